package weekgrid

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter(" Morning ")
	require.NoError(t, err)
	assert.Equal(t, FilterMorning, f)

	f, err = ParseFilter("")
	require.NoError(t, err)
	assert.Equal(t, FilterAll, f)

	_, err = ParseFilter("night")
	assert.ErrorIs(t, err, ErrUnknownFilter)
}

func TestFilterBounds(t *testing.T) {
	g := MustNewGrid(DefaultConfig())

	tests := []struct {
		filter     Filter
		start, end int
	}{
		{FilterAll, 0, 29},
		{FilterMorning, 0, 9},
		{FilterAfternoon, 10, 19},
		{FilterEvening, 20, 29},
	}
	for _, tt := range tests {
		t.Run(tt.filter.String(), func(t *testing.T) {
			assert.Equal(t, tt.start, g.FilterStartSlot(tt.filter))
			assert.Equal(t, tt.end, g.FilterEndSlot(tt.filter))
			assert.Equal(t, tt.end-tt.start+1, g.VisibleSlots(tt.filter))
		})
	}
}

func TestIsSlotVisible(t *testing.T) {
	g := MustNewGrid(DefaultConfig())

	assert.True(t, g.IsSlotVisible(9, FilterMorning))
	assert.False(t, g.IsSlotVisible(10, FilterMorning))
	assert.True(t, g.IsSlotVisible(10, FilterAfternoon))
	assert.True(t, g.IsSlotVisible(29, FilterAll))
	assert.False(t, g.IsSlotVisible(30, FilterAll))
	assert.False(t, g.IsSlotVisible(-1, FilterAll))
}

func TestFilterTransparency(t *testing.T) {
	g := MustNewGrid(DefaultConfig())
	rng := rand.New(rand.NewSource(7))

	t.Run("Selecting Under A Window Keeps Every Bit", func(t *testing.T) {
		dc := NewDragController(g, g.NewBitmap())
		require.NoError(t, dc.SetFilter(FilterMorning))
		dc.PointerDown(Cell{Weekday: Tuesday, Slot: 2})
		dc.PointerMove(Cell{Weekday: Thursday, Slot: 5})
		dc.PointerUp()
		before := dc.Bitmap().Clone()

		for _, f := range Filters {
			require.NoError(t, dc.SetFilter(f))
			assert.True(t, before.Equal(dc.Bitmap()), "filter %s", f)
		}
		assert.Equal(t, 12, dc.Bitmap().Count())
	})

	t.Run("Random Bitmaps Survive Every Filter Switch", func(t *testing.T) {
		for i := 0; i < 50; i++ {
			b := randomBitmap(g, rng)
			dc := NewDragController(g, b.Clone())
			for _, f := range Filters {
				require.NoError(t, dc.SetFilter(f))
			}
			require.NoError(t, dc.SetFilter(FilterAll))
			assert.True(t, b.Equal(dc.Bitmap()))
		}
	})

	t.Run("Unknown Filter Rejected", func(t *testing.T) {
		dc := NewDragController(g, g.NewBitmap())
		assert.ErrorIs(t, dc.SetFilter("night"), ErrUnknownFilter)
		assert.Equal(t, FilterAll, dc.Filter())
	})
}

func randomBitmap(g *Grid, rng *rand.Rand) *WeeklyBitmap {
	b := g.NewBitmap()
	for i := 0; i < 12; i++ {
		day := Weekday(rng.Intn(DaysPerWeek))
		if rng.Intn(2) == 0 {
			b.Toggle(day, rng.Intn(g.TotalSlots()))
			continue
		}
		start := rng.Intn(g.TotalSlots())
		end := rng.Intn(g.TotalSlots())
		b.SetRange(day, start, end, rng.Intn(3) != 0)
	}
	return b
}
