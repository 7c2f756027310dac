package scraper

import (
	"regexp"
	"strconv"
	"strings"

	"rtanks/ratingsworker/logger"

	"github.com/PuerkitoBio/goquery"
)

const profileMarker = "профиль игрока"

var (
	rankPatterns = []string{"офицер", "генерал", "капитан", "сержант", "ефрейтор", "маршал"}

	experienceRegex = regexp.MustCompile(`(\d+(?:\s+\d+)*)\s*/\s*(\d+(?:\s+\d+)*)`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// ParseProfile extracts a player record from a profile page. It returns nil
// when the page does not contain the player at all; every extraction step
// below the existence gate is best-effort and a field it cannot recover is
// simply left unset.
func ParseProfile(html, nickname string) (profile *PlayerProfile) {
	log := logger.ForScraper()

	// Markup occasionally turns up malformed enough to break a selector;
	// that is a missing profile, not a crash.
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("nickname", nickname).Msg("Profile parsing failed")
			profile = nil
		}
	}()

	lowered := strings.ToLower(html)
	if !strings.Contains(lowered, profileMarker) && !strings.Contains(lowered, strings.ToLower(nickname)) {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		log.Error().Err(err).Str("nickname", nickname).Msg("Failed to parse profile HTML")
		return nil
	}

	p := &PlayerProfile{
		Nickname: nickname,
		Activity: ActivityUnknown,
		Rankings: make(map[string]RankingEntry),
	}

	p.Activity = extractActivity(doc)
	p.Rank = extractRank(doc)
	p.Experience = extractExperience(doc)
	extractStats(doc, p)
	extractRankings(doc, p)
	extractEquipment(doc, p)

	return p
}

// extractActivity reads the inline style of the online indicator. Green
// means online, gray means offline, anything else stays unknown.
func extractActivity(doc *goquery.Document) Activity {
	activity := ActivityUnknown
	doc.Find("[class*='online']").EachWithBreak(func(i int, s *goquery.Selection) bool {
		style, exists := s.Attr("style")
		if !exists {
			return true
		}
		style = strings.ToLower(style)
		if strings.Contains(style, "green") {
			activity = ActivityOnline
			return false
		}
		if strings.Contains(style, "gray") || strings.Contains(style, "grey") {
			activity = ActivityOffline
			return false
		}
		return true
	})
	return activity
}

// extractRank finds the element carrying one of the localized military rank
// titles and returns its full trimmed text
func extractRank(doc *goquery.Document) string {
	rank := ""
	doc.Find("div").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if s.Children().Length() > 0 {
			return true
		}
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return true
		}
		lowered := strings.ToLower(text)
		for _, pattern := range rankPatterns {
			if strings.Contains(lowered, pattern) {
				rank = text
				return false
			}
		}
		return true
	})
	return rank
}

// extractExperience takes the numerator of the first "current / total"
// fraction in the document, tolerating spaces that group thousands
func extractExperience(doc *goquery.Document) *int {
	match := experienceRegex.FindStringSubmatch(doc.Text())
	if match == nil {
		return nil
	}
	numerator := whitespaceRegex.ReplaceAllString(match[1], "")
	value, err := strconv.Atoi(numerator)
	if err != nil {
		return nil
	}
	return &value
}

// extractStats walks every two-column table row, mapping localized labels
// onto profile fields. Later rows overwrite earlier ones.
func extractStats(doc *goquery.Document, p *PlayerProfile) {
	doc.Find("table").Each(func(i int, table *goquery.Selection) {
		table.Find("tr").Each(func(j int, row *goquery.Selection) {
			cells := row.Find("td")
			if cells.Length() < 2 {
				return
			}
			key := strings.TrimSpace(cells.Eq(0).Text())
			value := strings.TrimSpace(cells.Eq(1).Text())

			switch {
			case containsAny(key, "Уничтожил", "Убийств", "Убил"):
				if n, ok := parseDigits(value); ok {
					p.Kills = &n
				}
			case containsAny(key, "Подбит", "Смертей"):
				if n, ok := parseDigits(value); ok {
					p.Deaths = &n
				}
			case containsAny(key, "У/П", "K/D"):
				if f, err := strconv.ParseFloat(value, 64); err == nil {
					p.KDRatio = &f
				}
			case strings.Contains(key, "золотых ящиков"):
				if n, ok := parseDigits(value); ok {
					p.GoldBoxes = &n
				}
			case strings.Contains(key, "Премиум"):
				premium := strings.Contains(value, "Да")
				p.Premium = &premium
			case strings.Contains(key, "Группа"):
				p.Group = value
			}
		})
	})
}

// extractRankings reads the first table as the per-category rankings block.
// The stats pass may already have consumed some of its rows; the two passes
// pull disjoint fields so the double scan is harmless.
func extractRankings(doc *goquery.Document, p *PlayerProfile) {
	doc.Find("table").First().Find("tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}
		category := strings.TrimSpace(cells.Eq(0).Text())
		rank := strings.TrimSpace(cells.Eq(1).Text())
		value := strings.TrimSpace(cells.Eq(2).Text())

		if category == "" || rank == "" || value == "" {
			return
		}
		p.Rankings[category] = RankingEntry{Rank: rank, Value: value}
	})
}

// extractEquipment classifies every image inside an equipment block by its
// src path and records the alt text as the item name
func extractEquipment(doc *goquery.Document, p *PlayerProfile) {
	doc.Find("div[class*='equipment'], div[class*='gear']").Find("img").Each(func(i int, img *goquery.Selection) {
		alt := img.AttrOr("alt", "")
		src := img.AttrOr("src", "")

		switch {
		case strings.Contains(src, "turrets"):
			p.Equipment.Turrets = append(p.Equipment.Turrets, alt)
		case strings.Contains(src, "hulls"):
			p.Equipment.Hulls = append(p.Equipment.Hulls, alt)
		case strings.Contains(src, "colormaps"):
			p.Equipment.Paints = append(p.Equipment.Paints, alt)
		case strings.Contains(src, "resistances"):
			p.Equipment.Modules = append(p.Equipment.Modules, alt)
		}
	})
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// parseDigits parses a value only when it is a pure digit string
func parseDigits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
