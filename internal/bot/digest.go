package bot

import (
	"fmt"
	"html"
	"strings"
	"time"

	"svitlo-board/internal/board"
)

// RenderGroupDigest builds the digest text for one group of a day board.
// It is a pure function over the board payload, so the same schedule
// always renders the same message.
func RenderGroupDigest(b *board.DayBoard, group string) string {
	if b == nil {
		return msgDigestNoData
	}

	name := group
	var day *board.GroupDay
	for i := range b.Groups {
		if b.Groups[i].Key == group {
			day = &b.Groups[i]
			name = day.Name
			break
		}
	}

	var bld strings.Builder
	bld.WriteString(fmt.Sprintf(msgDigestHeader, html.EscapeString(b.Region), html.EscapeString(name)))

	if !b.HasData {
		bld.WriteString(msgDigestNoData)
		return bld.String()
	}
	if day == nil {
		bld.WriteString(msgDigestNoGroupData)
		return bld.String()
	}

	if len(day.Outages) == 0 {
		bld.WriteString(msgDigestNoOutages)
	} else {
		for _, interval := range day.Outages {
			bld.WriteString(fmt.Sprintf(msgDigestOutageLine, interval))
		}
		if total := offDuration(b, group); total > 0 {
			bld.WriteString(fmt.Sprintf(msgDigestTotal, formatDuration(total)))
		}
	}

	if hasMaybe(b, group) {
		bld.WriteString(msgDigestMaybeNote)
	}

	if len(b.Overlap) > 0 && len(b.OverlapGroups) > 0 {
		bld.WriteString(fmt.Sprintf(msgDigestOverlap,
			html.EscapeString(strings.Join(b.OverlapGroups, ", ")),
			strings.Join(b.Overlap, ", ")))
	}

	if b.FactUpdate != "" {
		bld.WriteString(fmt.Sprintf(msgDigestUpdated, html.EscapeString(b.FactUpdate)))
	}
	return bld.String()
}

// RenderOverlapAlert builds the alert text for slots where all watched
// groups are off at once.
func RenderOverlapAlert(region string, groups, intervals []string) string {
	var bld strings.Builder
	bld.WriteString(fmt.Sprintf(msgOverlapHeader, html.EscapeString(region)))
	bld.WriteString(fmt.Sprintf(msgOverlapGroups, html.EscapeString(strings.Join(groups, ", "))))
	for _, interval := range intervals {
		bld.WriteString(fmt.Sprintf(msgDigestOutageLine, interval))
	}
	bld.WriteString(msgOverlapHint)
	return bld.String()
}

// offDuration sums the time the group spends fully off, from the board's
// half-hour points.
func offDuration(b *board.DayBoard, group string) time.Duration {
	var slots int
	for _, p := range b.Points {
		if p.Levels[group] == 0 {
			slots++
		}
	}
	return time.Duration(slots) * 30 * time.Minute
}

// hasMaybe reports whether any half-hour of the group's day is uncertain.
func hasMaybe(b *board.DayBoard, group string) bool {
	for _, p := range b.Points {
		if p.Statuses[group] == "maybe" {
			return true
		}
	}
	return false
}

// formatDuration returns a human-readable Ukrainian duration string.
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	if days > 0 {
		return fmt.Sprintf("%d д %d год %d хв", days, hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%d год %d хв", hours, minutes)
	}
	return fmt.Sprintf("%d хв", minutes)
}
