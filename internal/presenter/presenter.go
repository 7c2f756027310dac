// Package presenter turns scraped records into rendering-agnostic message
// views. It decides field order, truncation and iconography; it knows
// nothing about the site's markup or any chat platform's API.
package presenter

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"rtanks/ratingsworker/internal/scraper"
)

const (
	maxEquipmentItems = 3
	maxRankings       = 5
	maxFieldLength    = 1024

	footerText = "Data from RTanks Online Ratings"
	footerIcon = "https://ratings.ranked-rtanks.online/public/images/logo.png"
)

var (
	leadingNoiseRegex  = regexp.MustCompile(`^[\d\s.\-#]+`)
	trailingNoiseRegex = regexp.MustCompile(`[\d\s.\-#]+$`)
	specialCharsRegex  = regexp.MustCompile(`[^\p{L}\p{N}\s\-_.]`)
)

// Field is one labeled value in a message view
type Field struct {
	Name   string
	Value  string
	Inline bool
}

// MessageView is a platform-neutral message layout
type MessageView struct {
	Title       string
	Description string
	Fields      []Field
	Footer      string
	FooterIcon  string
}

// PlayerView builds the message layout for a player profile
func PlayerView(p *scraper.PlayerProfile) MessageView {
	view := MessageView{
		Title:       "🎮 " + p.Nickname,
		Description: "RTanks Online Player Statistics",
		Footer:      footerText,
		FooterIcon:  footerIcon,
	}

	if p.Rank != "" {
		view.addInline("🪖 Rank", p.Rank)
	}
	if p.Experience != nil {
		view.addInline("⭐ Experience", GroupDigits(*p.Experience))
	}
	view.addInline("🟣 Activity", activityLabel(p.Activity))

	if p.Kills != nil {
		view.addInline("💀 Kills", GroupDigits(*p.Kills))
	}
	if p.Deaths != nil {
		view.addInline("☠️ Deaths", GroupDigits(*p.Deaths))
	}
	if p.KDRatio != nil {
		view.addInline("📊 K/D Ratio", fmt.Sprintf("%.2f", *p.KDRatio))
	}
	if p.GoldBoxes != nil {
		view.addInline("🎁 Gold Boxes", GroupDigits(*p.GoldBoxes))
	}
	if p.Premium != nil {
		status := "❌ No"
		if *p.Premium {
			status = "✅ Yes"
		}
		view.addInline("💎 Premium", status)
	}
	if p.Group != "" {
		view.addInline("👥 Group", p.Group)
	}

	if rankings := formatRankings(p.Rankings); rankings != "" {
		view.add("🏆 Current Rankings", rankings)
	}
	if equipment := formatEquipment(p.Equipment); equipment != "" {
		view.add("🎯 Equipment", equipment)
	}

	return view
}

// LeaderboardView builds the message layout for a leaderboard snapshot
func LeaderboardView(categoryName string, entries []scraper.LeaderboardEntry) MessageView {
	view := MessageView{
		Title:       "🏆 Top 10 Players - " + categoryName,
		Description: "RTanks Online Leaderboard",
		Footer:      footerText,
		FooterIcon:  footerIcon,
	}

	if len(entries) == 0 {
		view.add("No Data Available", "Could not retrieve leaderboard data at this time.")
		return view
	}

	medals := []string{"🥇", "🥈", "🥉"}
	lines := make([]string, 0, len(entries))
	for i, entry := range entries {
		value := entry.FormattedValue
		if value == "" {
			value = GroupDigits(entry.Value)
		}

		prefix := fmt.Sprintf("%d.", entry.Rank)
		if i < len(medals) {
			prefix = medals[i]
		}

		lines = append(lines, fmt.Sprintf("%s **%s** - %s", prefix, CleanPlayerName(entry.Name), value))
	}

	// Platforms cap a field body; split into two columns when it overflows
	body := strings.Join(lines, "\n")
	if len(body) > maxFieldLength {
		mid := len(lines) / 2
		view.addInline("Rankings 1-5", strings.Join(lines[:mid], "\n"))
		view.addInline("Rankings 6-10", strings.Join(lines[mid:], "\n"))
	} else {
		view.add("Rankings", body)
	}

	view.add("ℹ️ Info", "Rankings update regularly on the RTanks website.\n"+
		"Some categories reset weekly on Monday at 2:00 UTC.")

	return view
}

// CleanPlayerName strips icon leftovers and decorations from a display name
func CleanPlayerName(name string) string {
	name = strings.TrimSpace(leadingNoiseRegex.ReplaceAllString(name, ""))
	name = strings.TrimSpace(trailingNoiseRegex.ReplaceAllString(name, ""))
	name = specialCharsRegex.ReplaceAllString(name, "")
	name = strings.Join(strings.Fields(name), " ")

	if name == "" {
		return "Unknown"
	}
	return name
}

// FormatNumber abbreviates large values for compact display
func FormatNumber(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

// GroupDigits renders a value with thousands separators
func GroupDigits(n int) string {
	s := fmt.Sprintf("%d", n)
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}

	var b strings.Builder
	for i, digit := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	if negative {
		return "-" + b.String()
	}
	return b.String()
}

func activityLabel(activity scraper.Activity) string {
	switch activity {
	case scraper.ActivityOnline:
		return "🟢 Online"
	case scraper.ActivityOffline:
		return "⚪ Offline"
	default:
		return "❔ Unknown"
	}
}

// formatRankings renders up to five ranking rows, sorted by category for
// stable output across calls
func formatRankings(rankings map[string]scraper.RankingEntry) string {
	if len(rankings) == 0 {
		return ""
	}

	categories := make([]string, 0, len(rankings))
	for category := range rankings {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	if len(categories) > maxRankings {
		categories = categories[:maxRankings]
	}

	lines := make([]string, 0, len(categories))
	for _, category := range categories {
		entry := rankings[category]
		lines = append(lines, fmt.Sprintf("%s: %s (%s)", category, entry.Rank, entry.Value))
	}
	return strings.Join(lines, "\n")
}

func formatEquipment(equipment scraper.Equipment) string {
	var lines []string
	if len(equipment.Turrets) > 0 {
		lines = append(lines, "🔫 Turrets: "+joinCapped(equipment.Turrets))
	}
	if len(equipment.Hulls) > 0 {
		lines = append(lines, "🛡️ Hulls: "+joinCapped(equipment.Hulls))
	}
	if len(equipment.Paints) > 0 {
		lines = append(lines, "🎨 Paints: "+joinCapped(equipment.Paints))
	}
	if len(equipment.Modules) > 0 {
		lines = append(lines, "⚙️ Modules: "+joinCapped(equipment.Modules))
	}
	return strings.Join(lines, "\n")
}

func joinCapped(items []string) string {
	if len(items) > maxEquipmentItems {
		items = items[:maxEquipmentItems]
	}
	return strings.Join(items, ", ")
}

func (v *MessageView) add(name, value string) {
	v.Fields = append(v.Fields, Field{Name: name, Value: value})
}

func (v *MessageView) addInline(name, value string) {
	v.Fields = append(v.Fields, Field{Name: name, Value: value, Inline: true})
}
