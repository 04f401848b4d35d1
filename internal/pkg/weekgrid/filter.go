package weekgrid

import (
	"fmt"
	"strings"
)

// Filter names a time window of the day. Filters only decide which slots are
// visible and interactive; they never change a bitmap.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterMorning   Filter = "morning"
	FilterAfternoon Filter = "afternoon"
	FilterEvening   Filter = "evening"
)

// Filters lists every filter in display order.
var Filters = []Filter{FilterAll, FilterMorning, FilterAfternoon, FilterEvening}

func (f Filter) String() string {
	return string(f)
}

func (f Filter) Valid() bool {
	switch f {
	case FilterAll, FilterMorning, FilterAfternoon, FilterEvening:
		return true
	}
	return false
}

// ParseFilter accepts a filter name case-insensitively. An empty name is "all".
func ParseFilter(name string) (Filter, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return FilterAll, nil
	}
	f := Filter(name)
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownFilter, name)
	}
	return f, nil
}

// Window is the hour range covered by f. Unknown filters cover the whole grid.
func (g *Grid) Window(f Filter) HourRange {
	if w, ok := g.windows[f]; ok {
		return w
	}
	return g.windows[FilterAll]
}

// IsSlotVisible reports whether slot falls inside the hour window of f.
func (g *Grid) IsSlotVisible(slot int, f Filter) bool {
	if !g.validSlot(slot) {
		return false
	}
	if f == FilterAll {
		return true
	}
	w := g.Window(f)
	hour := g.SlotHour(slot)
	return hour >= w.Start && hour < w.End
}

// FilterStartSlot is the first absolute slot visible under f.
func (g *Grid) FilterStartSlot(f Filter) int {
	if f == FilterAll {
		return 0
	}
	w := g.Window(f)
	return clamp((w.Start-g.cfg.StartHour)*60/g.cfg.MinutesPerSlot, 0, g.totalSlots-1)
}

// FilterEndSlot is the last absolute slot visible under f.
func (g *Grid) FilterEndSlot(f Filter) int {
	if f == FilterAll {
		return g.totalSlots - 1
	}
	w := g.Window(f)
	return clamp((w.End-g.cfg.StartHour)*60/g.cfg.MinutesPerSlot-1, 0, g.totalSlots-1)
}

// VisibleSlots is the number of rows the viewport of f shows.
func (g *Grid) VisibleSlots(f Filter) int {
	return g.FilterEndSlot(f) - g.FilterStartSlot(f) + 1
}
