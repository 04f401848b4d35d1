package weekgrid

// Run is a maximal block of consecutive selected slots on one weekday.
// Start and End are inclusive slot indices; EndTime is the exclusive end,
// i.e. SlotToTime(End+1).
type Run struct {
	Weekday   Weekday `json:"weekday"`
	Start     int     `json:"start"`
	End       int     `json:"end"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
}

// Slots is the number of slots the run covers.
func (r Run) Slots() int {
	return r.End - r.Start + 1
}

func (g *Grid) newRun(day Weekday, start, end int) Run {
	return Run{
		Weekday:   day,
		Start:     start,
		End:       end,
		StartTime: g.SlotToTime(start),
		EndTime:   g.SlotToTime(end + 1),
	}
}

// ExtractRuns groups the set bits of b into runs, Monday..Sunday and by start
// slot within a weekday. An empty bitmap yields an empty slice.
func (g *Grid) ExtractRuns(b *WeeklyBitmap) []Run {
	runs := []Run{}
	for d := Monday; d <= Sunday; d++ {
		runs = append(runs, g.scanRuns(b, d, func(int) bool { return true })...)
	}
	return runs
}

// ExtractDayRuns is ExtractRuns for a single weekday.
func (g *Grid) ExtractDayRuns(b *WeeklyBitmap, day Weekday) []Run {
	return g.scanRuns(b, day, func(int) bool { return true })
}

// ExtractVisibleRuns groups the set bits of one weekday that are visible under
// f. A run is cut wherever visibility changes, so a block spanning a window
// boundary is displayed as separate runs even though the bitmap is untouched.
func (g *Grid) ExtractVisibleRuns(b *WeeklyBitmap, day Weekday, f Filter) []Run {
	return g.scanRuns(b, day, func(slot int) bool { return g.IsSlotVisible(slot, f) })
}

func (g *Grid) scanRuns(b *WeeklyBitmap, day Weekday, visible func(int) bool) []Run {
	runs := []Run{}
	if !day.Valid() {
		return runs
	}
	open := -1
	for s := 0; s < b.TotalSlots(); s++ {
		if b.Get(day, s) && visible(s) {
			if open < 0 {
				open = s
			}
			continue
		}
		if open >= 0 {
			runs = append(runs, g.newRun(day, open, s-1))
			open = -1
		}
	}
	if open >= 0 {
		runs = append(runs, g.newRun(day, open, b.TotalSlots()-1))
	}
	return runs
}
