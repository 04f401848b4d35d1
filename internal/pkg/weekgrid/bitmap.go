package weekgrid

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Weekday indexes the grid columns, Monday first.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// DaysPerWeek is the number of weekday columns.
const DaysPerWeek = 7

func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

// WeeklyBitmap is the selection state: one bit per (weekday, absolute slot).
// Every weekday always holds exactly TotalSlots bits.
type WeeklyBitmap struct {
	totalSlots int
	days       [DaysPerWeek][]bool
}

// NewBitmap returns an empty bitmap sized for g.
func (g *Grid) NewBitmap() *WeeklyBitmap {
	return newWeeklyBitmap(g.totalSlots)
}

func newWeeklyBitmap(totalSlots int) *WeeklyBitmap {
	b := &WeeklyBitmap{totalSlots: totalSlots}
	for d := range b.days {
		b.days[d] = make([]bool, totalSlots)
	}
	return b
}

func (b *WeeklyBitmap) TotalSlots() int {
	return b.totalSlots
}

func (b *WeeklyBitmap) inRange(day Weekday, slot int) bool {
	return day.Valid() && slot >= 0 && slot < b.totalSlots
}

// Get reports the bit at (day, slot). Out-of-range cells read as unset.
func (b *WeeklyBitmap) Get(day Weekday, slot int) bool {
	if !b.inRange(day, slot) {
		return false
	}
	return b.days[day][slot]
}

// Toggle flips exactly one bit. Out-of-range cells are ignored.
func (b *WeeklyBitmap) Toggle(day Weekday, slot int) {
	if !b.inRange(day, slot) {
		return
	}
	b.days[day][slot] = !b.days[day][slot]
}

// SetRange sets every slot in [startSlot, endSlot] of day to value. A reversed
// range is swapped; cells outside the grid are ignored.
func (b *WeeklyBitmap) SetRange(day Weekday, startSlot, endSlot int, value bool) {
	if !day.Valid() {
		return
	}
	if startSlot > endSlot {
		startSlot, endSlot = endSlot, startSlot
	}
	for s := startSlot; s <= endSlot; s++ {
		if s < 0 || s >= b.totalSlots {
			continue
		}
		b.days[day][s] = value
	}
}

// ClearRun unsets the slots covered by r.
func (b *WeeklyBitmap) ClearRun(r Run) {
	b.SetRange(r.Weekday, r.Start, r.End, false)
}

// HasAnySelection reports whether any weekday has a set bit.
func (b *WeeklyBitmap) HasAnySelection() bool {
	for d := range b.days {
		for _, bit := range b.days[d] {
			if bit {
				return true
			}
		}
	}
	return false
}

// Count is the number of set bits.
func (b *WeeklyBitmap) Count() int {
	n := 0
	for d := range b.days {
		for _, bit := range b.days[d] {
			if bit {
				n++
			}
		}
	}
	return n
}

// Clear unsets every bit, keeping the dimensions.
func (b *WeeklyBitmap) Clear() {
	for d := range b.days {
		for s := range b.days[d] {
			b.days[d][s] = false
		}
	}
}

func (b *WeeklyBitmap) Clone() *WeeklyBitmap {
	cp := &WeeklyBitmap{totalSlots: b.totalSlots}
	for d := range b.days {
		cp.days[d] = make([]bool, b.totalSlots)
		copy(cp.days[d], b.days[d])
	}
	return cp
}

func (b *WeeklyBitmap) Equal(other *WeeklyBitmap) bool {
	if other == nil || b.totalSlots != other.totalSlots {
		return false
	}
	for d := range b.days {
		for s := range b.days[d] {
			if b.days[d][s] != other.days[d][s] {
				return false
			}
		}
	}
	return true
}

// Bits returns a copy of one weekday as 0/1 values.
func (b *WeeklyBitmap) Bits(day Weekday) []int {
	if !day.Valid() {
		return nil
	}
	out := make([]int, b.totalSlots)
	for s, bit := range b.days[day] {
		if bit {
			out[s] = 1
		}
	}
	return out
}

type bitmapJSON struct {
	TotalSlots int     `json:"totalSlots"`
	Days       [][]int `json:"days"`
}

// MarshalJSON encodes the bitmap as seven arrays of 0/1, Monday first.
func (b *WeeklyBitmap) MarshalJSON() ([]byte, error) {
	out := bitmapJSON{TotalSlots: b.totalSlots, Days: make([][]int, DaysPerWeek)}
	for d := Monday; d <= Sunday; d++ {
		out.Days[d] = b.Bits(d)
	}
	return json.Marshal(out)
}

func (b *WeeklyBitmap) UnmarshalJSON(data []byte) error {
	var in bitmapJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.TotalSlots <= 0 {
		return fmt.Errorf("weekgrid: bitmap totalSlots %d", in.TotalSlots)
	}
	if len(in.Days) != DaysPerWeek {
		return fmt.Errorf("weekgrid: bitmap has %d weekdays, want %d", len(in.Days), DaysPerWeek)
	}
	decoded := newWeeklyBitmap(in.TotalSlots)
	for d, bits := range in.Days {
		if len(bits) != in.TotalSlots {
			return fmt.Errorf("weekgrid: weekday %d has %d slots, want %d", d, len(bits), in.TotalSlots)
		}
		for s, bit := range bits {
			decoded.days[d][s] = bit == 1
		}
	}
	*b = *decoded
	return nil
}
