package weekgrid

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SlotToTime renders the wall-clock start of slot as "HH:MM".
// slot == TotalSlots() is accepted and yields the end of the grid day, which is
// how the exclusive end of a run is displayed.
func (g *Grid) SlotToTime(slot int) string {
	totalMinutes := slot * g.cfg.MinutesPerSlot
	hour := totalMinutes/60 + g.cfg.StartHour
	minute := totalMinutes % 60
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// TimeToSlot is the inverse of SlotToTime. It only accepts times that are part
// of the grid vocabulary: aligned to a slot boundary and between the grid start
// and end hour (inclusive of the end, which maps to TotalSlots()).
func (g *Grid) TimeToSlot(value string) (int, bool) {
	hour, minute, ok := parseClock(value)
	if !ok {
		return 0, false
	}
	minutes := (hour-g.cfg.StartHour)*60 + minute
	if minutes < 0 || minutes%g.cfg.MinutesPerSlot != 0 {
		return 0, false
	}
	slot := minutes / g.cfg.MinutesPerSlot
	if slot > g.totalSlots {
		return 0, false
	}
	return slot, true
}

// SlotHour is the wall-clock hour in which slot starts.
func (g *Grid) SlotHour(slot int) int {
	return (slot*g.cfg.MinutesPerSlot)/60 + g.cfg.StartHour
}

// PositionToSlot maps a vertical pointer position to an absolute slot index in
// the viewport of filter f. It is the exact inverse of SlotToPixelTop, so a
// position outside the viewport yields a slot the filter hides; the drag
// controller decides what to do with those.
func (g *Grid) PositionToSlot(pointerY, containerTopY float64, f Filter) int {
	relative := pointerY - containerTopY
	relativeSlot := int(math.Floor(relative / g.cfg.SlotPixelHeight))
	return relativeSlot + g.FilterStartSlot(f)
}

// SlotToPixelTop is the vertical offset of slot inside the viewport of filter f.
func (g *Grid) SlotToPixelTop(slot int, f Filter) float64 {
	return float64(slot-g.FilterStartSlot(f)) * g.cfg.SlotPixelHeight
}

// ColumnToWeekday maps a horizontal pointer position to a weekday column,
// clamped to Monday..Sunday.
func (g *Grid) ColumnToWeekday(pointerX, containerLeftX float64) Weekday {
	column := int(math.Floor((pointerX - containerLeftX) / g.cfg.DayColumnWidth))
	return Weekday(clamp(column, int(Monday), int(Sunday)))
}

// WeekdayToPixelLeft is the horizontal offset of the weekday column.
func (g *Grid) WeekdayToPixelLeft(day Weekday) float64 {
	return float64(day) * g.cfg.DayColumnWidth
}

// CellAt resolves a pointer position to a grid cell under filter f.
func (g *Grid) CellAt(pointerX, pointerY, containerLeftX, containerTopY float64, f Filter) Cell {
	return Cell{
		Weekday: g.ColumnToWeekday(pointerX, containerLeftX),
		Slot:    g.PositionToSlot(pointerY, containerTopY, f),
	}
}

func parseClock(value string) (int, int, bool) {
	h, m, found := strings.Cut(strings.TrimSpace(value), ":")
	if !found || len(m) != 2 || len(h) == 0 || len(h) > 2 {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 24 {
		return 0, 0, false
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
