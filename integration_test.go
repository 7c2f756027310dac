package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rtanks/ratingsworker/config"
	"rtanks/ratingsworker/internal/presenter"
	"rtanks/ratingsworker/internal/scraper"
	"rtanks/ratingsworker/services/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Trimmed-down copies of the ratings site's two page shapes
const testProfileHTML = `
<!DOCTYPE html>
<html>
<head><title>Профиль игрока Foo</title></head>
<body>
	<span class="online-indicator" style="color: green;"></span>
	<div>Капитан</div>
	<div>1 500 / 2 000</div>
	<table>
		<tr><td>Убил</td><td>42</td></tr>
		<tr><td>Подбит</td><td>7</td></tr>
		<tr><td>Премиум</td><td>Да</td></tr>
	</table>
	<div class="equipment">
		<img src="/images/turrets/railgun.png" alt="Рельса" />
	</div>
</body>
</html>
`

const testRatingsHTML = `
<!DOCTYPE html>
<html>
<head><title>Рейтинг игроков</title></head>
<body>
	<table>
		<tr><td>1</td><td><a href="/user/Alice">Alice</a></td><td>1 000</td></tr>
		<tr><td>2</td><td><a href="/user/Bob">Bob</a></td><td>500</td></tr>
	</table>
</body>
</html>
`

func TestEndToEndPlayerLookup(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		switch r.URL.Path {
		case "/user/Foo":
			w.Write([]byte(testProfileHTML))
		case "/":
			w.Write([]byte(testRatingsHTML))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	cfg := config.Config{
		BaseURL:      server.URL,
		CacheTTL:     300 * time.Second,
		FetchTimeout: 5 * time.Second,
	}

	fetcher := scraper.NewHTTPFetcher(cfg.FetchTimeout)
	service := scraper.NewService(cfg, fetcher, cache.NewMemoryService())
	defer service.Shutdown()

	// Player lookup hits the site once, then the cache
	profile := service.GetPlayerStats("Foo")
	require.NotNil(t, profile)
	assert.Equal(t, scraper.ActivityOnline, profile.Activity)
	assert.Equal(t, "Капитан", profile.Rank)
	require.NotNil(t, profile.Kills)
	assert.Equal(t, 42, *profile.Kills)

	service.GetPlayerStats("Foo")
	assert.Equal(t, 1, requests)

	// Unknown player: the 404 collapses to an absent result
	assert.Nil(t, service.GetPlayerStats("Nobody"))

	// Leaderboard flows through to a presentable view
	entries := service.GetLeaderboard("experience")
	require.Len(t, entries, 2)

	view := presenter.LeaderboardView("Experience", entries)
	field := view.Fields[0]
	assert.Equal(t, "Rankings", field.Name)
	assert.Contains(t, field.Value, "🥇 **Alice** - 1 000")
	assert.Contains(t, field.Value, "🥈 **Bob** - 500")
}
