package weekgrid

import (
	"regexp"
	"strings"
)

const (
	entrySeparator = " / "
	labelSeparator = " - "
	rangeSeparator = " : "
)

// WeekdayLabels are the display names used in the persisted schedule string,
// Monday first.
var WeekdayLabels = [DaysPerWeek]string{
	"Thứ 2",
	"Thứ 3",
	"Thứ 4",
	"Thứ 5",
	"Thứ 6",
	"Thứ 7",
	"Chủ nhật",
}

func (d Weekday) Label() string {
	if !d.Valid() {
		return ""
	}
	return WeekdayLabels[d]
}

// WeekdayFromLabel matches a display label exactly, ignoring surrounding space.
func WeekdayFromLabel(label string) (Weekday, bool) {
	label = strings.TrimSpace(label)
	for i, l := range WeekdayLabels {
		if l == label {
			return Weekday(i), true
		}
	}
	return 0, false
}

// PersistedEntry is one "Weekday - HH:MM : HH:MM" item of a stored schedule.
type PersistedEntry struct {
	Weekday   Weekday `json:"weekday"`
	Label     string  `json:"label"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
}

// FormatForSubmission renders runs as "{label} - {start} : {end}" joined by
// " / ", in the order given.
func FormatForSubmission(runs []Run) string {
	parts := make([]string, 0, len(runs))
	for _, r := range runs {
		parts = append(parts, r.Weekday.Label()+labelSeparator+r.StartTime+rangeSeparator+r.EndTime)
	}
	return strings.Join(parts, entrySeparator)
}

// FormatBitmap is FormatForSubmission over the runs of b.
func (g *Grid) FormatBitmap(b *WeeklyBitmap) string {
	return FormatForSubmission(g.ExtractRuns(b))
}

var timeRangePattern = regexp.MustCompile(`^(\d{1,2}:\d{2})\s*:\s*(\d{1,2}:\d{2})$`)

// ParseFromPersisted reads a stored schedule string. Parsing is lenient:
// entries with an unknown weekday label, a time outside the grid vocabulary,
// or an empty or reversed range are dropped and the rest are kept. Spacing
// around the separators is not significant.
func (g *Grid) ParseFromPersisted(text string) []PersistedEntry {
	entries := []PersistedEntry{}
	for _, raw := range strings.Split(text, "/") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		label, timeRange, found := strings.Cut(raw, "-")
		if !found {
			continue
		}
		day, ok := WeekdayFromLabel(label)
		if !ok {
			continue
		}
		m := timeRangePattern.FindStringSubmatch(strings.TrimSpace(timeRange))
		if m == nil {
			continue
		}
		start, okStart := g.TimeToSlot(m[1])
		end, okEnd := g.TimeToSlot(m[2])
		if !okStart || !okEnd || end <= start {
			continue
		}
		entries = append(entries, PersistedEntry{
			Weekday:   day,
			Label:     day.Label(),
			StartTime: g.SlotToTime(start),
			EndTime:   g.SlotToTime(end),
		})
	}
	return entries
}

// HydrateBitmap builds a bitmap from parsed entries. Overlapping entries merge.
func (g *Grid) HydrateBitmap(entries []PersistedEntry) *WeeklyBitmap {
	b := g.NewBitmap()
	for _, e := range entries {
		start, okStart := g.TimeToSlot(e.StartTime)
		end, okEnd := g.TimeToSlot(e.EndTime)
		if !okStart || !okEnd || end <= start {
			continue
		}
		b.SetRange(e.Weekday, start, end-1, true)
	}
	return b
}

// BitmapFromPersisted is ParseFromPersisted followed by HydrateBitmap.
func (g *Grid) BitmapFromPersisted(text string) *WeeklyBitmap {
	return g.HydrateBitmap(g.ParseFromPersisted(text))
}

// ValidateSubmission rejects a bitmap with nothing selected.
func ValidateSubmission(b *WeeklyBitmap) error {
	if b == nil || !b.HasAnySelection() {
		return ErrEmptySelection
	}
	return nil
}
