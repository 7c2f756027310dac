package scraper

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"rtanks/ratingsworker/logger"

	"github.com/PuerkitoBio/goquery"
)

const leaderboardLimit = 10

var (
	leadingDigitsRegex  = regexp.MustCompile(`^[\d\s]+`)
	leadingSymbolsRegex = regexp.MustCompile(`^[^\p{L}\p{N}_]+`)
	nonNumericRegex     = regexp.MustCompile(`[^\d\s]`)
)

// ParseLeaderboard extracts ranked entries from the ratings page. Rows are
// accumulated across every table on the page, then sorted by rank and cut
// to the top 10. Total failure yields an empty list, never an error.
func ParseLeaderboard(html string) (entries []LeaderboardEntry) {
	log := logger.ForScraper()

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Leaderboard parsing failed")
			entries = []LeaderboardEntry{}
		}
	}()

	entries = []LeaderboardEntry{}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		log.Error().Err(err).Msg("Failed to parse leaderboard HTML")
		return entries
	}

	doc.Find("table").Each(func(i int, table *goquery.Selection) {
		table.Find("tr").Each(func(j int, row *goquery.Selection) {
			cells := row.Find("td")
			if cells.Length() < 3 {
				return
			}

			rankText := strings.TrimSpace(cells.Eq(0).Text())
			nameCell := cells.Eq(1)
			valueText := strings.TrimSpace(cells.Eq(2).Text())

			name := resolveName(nameCell)

			// Rows without a pure numeric rank are navigation noise
			rank, ok := parseDigits(rankText)
			if !ok || name == "" || valueText == "" {
				return
			}

			entries = append(entries, LeaderboardEntry{
				Rank:           rank,
				Name:           name,
				Value:          parseValue(valueText),
				FormattedValue: valueText,
			})
		})
	})

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Rank < entries[j].Rank
	})
	if len(entries) > leaderboardLimit {
		entries = entries[:leaderboardLimit]
	}

	return entries
}

// resolveName extracts the player name from a cell, preferring link text,
// then an image alt attribute, then the raw cell text
func resolveName(cell *goquery.Selection) string {
	name := strings.TrimSpace(cell.Find("a").First().Text())

	if name == "" {
		name = strings.TrimSpace(cell.Find("img").First().AttrOr("alt", ""))
	}

	if name == "" {
		name = strings.TrimSpace(cell.Text())
	}

	// Strip rank numbers and icon leftovers glued to the front
	name = strings.TrimSpace(leadingDigitsRegex.ReplaceAllString(name, ""))
	name = strings.TrimSpace(leadingSymbolsRegex.ReplaceAllString(name, ""))

	return name
}

// parseValue reduces a display value like "1 000" to its integer form.
// Unparseable text defaults to 0; the display form is kept separately.
func parseValue(text string) int {
	cleaned := nonNumericRegex.ReplaceAllString(text, "")
	cleaned = strings.Join(strings.Fields(cleaned), "")
	if cleaned == "" {
		return 0
	}
	value, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0
	}
	return value
}
