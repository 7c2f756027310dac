package scraper

import (
	"encoding/json"
	"time"

	"rtanks/ratingsworker/config"
	"rtanks/ratingsworker/logger"
	scrapeerrors "rtanks/ratingsworker/pkg/errors"
	"rtanks/ratingsworker/services/cache"
)

// Service answers player and leaderboard queries, checking the cache before
// touching the network. Results are best-effort: a nil profile or nil entry
// slice means "no data right now", which callers render as such.
type Service struct {
	cfg      config.Config
	fetcher  Fetcher
	cacheSvc cache.CacheService
	log      *logger.Logger
}

// NewService creates a scraper service
func NewService(cfg config.Config, fetcher Fetcher, cacheSvc cache.CacheService) *Service {
	return &Service{
		cfg:      cfg,
		fetcher:  fetcher,
		cacheSvc: cacheSvc,
		log:      logger.ForScraper(),
	}
}

// GetPlayerStats returns a player's profile, from cache when fresh
func (s *Service) GetPlayerStats(nickname string) *PlayerProfile {
	cacheKey := "player_" + nickname

	if cached, err := s.cacheSvc.Get(cacheKey); err == nil {
		var profile PlayerProfile
		if err := json.Unmarshal(cached, &profile); err == nil {
			s.log.Debug().Str("nickname", nickname).Msg("Profile served from cache")
			return &profile
		} else {
			s.log.Warn().Err(err).Str("key", cacheKey).Msg("Discarding undecodable cache entry")
		}
	}

	html, ok := s.fetcher.FetchPage(s.cfg.PlayerURL(nickname))
	if !ok {
		return nil
	}

	profile := ParseProfile(html, nickname)
	if profile == nil {
		s.log.Info().Str("nickname", nickname).Msg("Player not found")
		return nil
	}

	s.store(cacheKey, profile)
	return profile
}

// GetLeaderboard returns the top players for a category. The category only
// partitions the cache today; every category is scraped from the root page.
func (s *Service) GetLeaderboard(category string) []LeaderboardEntry {
	cacheKey := "leaderboard_" + category

	if cached, err := s.cacheSvc.Get(cacheKey); err == nil {
		var entries []LeaderboardEntry
		if err := json.Unmarshal(cached, &entries); err == nil {
			s.log.Debug().Str("category", category).Msg("Leaderboard served from cache")
			return entries
		} else {
			s.log.Warn().Err(err).Str("key", cacheKey).Msg("Discarding undecodable cache entry")
		}
	}

	html, ok := s.fetcher.FetchPage(s.cfg.LeaderboardURL(category))
	if !ok {
		return nil
	}

	entries := ParseLeaderboard(html)
	if len(entries) > 0 {
		s.store(cacheKey, entries)
	}

	return entries
}

// CacheTTL exposes the configured entry lifetime
func (s *Service) CacheTTL() time.Duration {
	return s.cfg.CacheTTL
}

// Shutdown releases the fetcher's transport resources
func (s *Service) Shutdown() error {
	return s.fetcher.Close()
}

func (s *Service) store(key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("Failed to encode cache entry")
		return
	}
	if err := s.cacheSvc.Set(key, data, s.cfg.CacheTTL); err != nil {
		cerr := scrapeerrors.NewCache(key, "failed to store cache entry", err)
		s.log.Warn().Err(cerr).Str("key", key).Msg("Failed to store cache entry")
	}
}
