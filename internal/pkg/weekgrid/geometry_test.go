package weekgrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrid(t *testing.T) {
	t.Run("Default Config", func(t *testing.T) {
		g, err := NewGrid(DefaultConfig())
		require.NoError(t, err)
		assert.Equal(t, 30, g.TotalSlots())
	})

	t.Run("Slot Length Must Divide An Hour", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MinutesPerSlot = 25
		_, err := NewGrid(cfg)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("Reversed Hours", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.StartHour, cfg.EndHour = 22, 7
		_, err := NewGrid(cfg)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("Window Outside Grid", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Evening = HourRange{Start: 17, End: 23}
		_, err := NewGrid(cfg)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("Non Positive Pixel Height", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.SlotPixelHeight = 0
		_, err := NewGrid(cfg)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestSlotToTime(t *testing.T) {
	g := MustNewGrid(DefaultConfig())

	assert.Equal(t, "07:00", g.SlotToTime(0))
	assert.Equal(t, "07:30", g.SlotToTime(1))
	assert.Equal(t, "08:30", g.SlotToTime(3))
	assert.Equal(t, "21:30", g.SlotToTime(29))
	assert.Equal(t, "22:00", g.SlotToTime(30))
}

func TestTimeToSlot(t *testing.T) {
	g := MustNewGrid(DefaultConfig())

	t.Run("Inverse Of SlotToTime", func(t *testing.T) {
		for slot := 0; slot <= g.TotalSlots(); slot++ {
			got, ok := g.TimeToSlot(g.SlotToTime(slot))
			assert.True(t, ok)
			assert.Equal(t, slot, got)
		}
	})

	t.Run("Single Digit Hour", func(t *testing.T) {
		got, ok := g.TimeToSlot("8:00")
		assert.True(t, ok)
		assert.Equal(t, 2, got)
	})

	t.Run("Outside Vocabulary", func(t *testing.T) {
		for _, value := range []string{"06:30", "22:30", "08:15", "8", "aa:bb", "", "08:5"} {
			_, ok := g.TimeToSlot(value)
			assert.False(t, ok, value)
		}
	})
}

func TestPositionToSlot(t *testing.T) {
	g := MustNewGrid(DefaultConfig())
	const containerTop = 140.0

	t.Run("Inverse Of SlotToPixelTop", func(t *testing.T) {
		for _, f := range Filters {
			for slot := 0; slot < g.TotalSlots(); slot++ {
				y := g.SlotToPixelTop(slot, f) + containerTop
				assert.Equal(t, slot, g.PositionToSlot(y, containerTop, f), "filter %s slot %d", f, slot)
			}
		}
	})

	t.Run("Inside A Slot Floors", func(t *testing.T) {
		assert.Equal(t, 3, g.PositionToSlot(containerTop+3*24+23.9, containerTop, FilterAll))
	})

	t.Run("Filtered Viewport Offsets By Window Start", func(t *testing.T) {
		assert.Equal(t, 20, g.PositionToSlot(containerTop, containerTop, FilterEvening))
		assert.Equal(t, 0.0, g.SlotToPixelTop(20, FilterEvening))
	})

	t.Run("Outside Viewport Is Not Clamped", func(t *testing.T) {
		assert.Equal(t, 7, g.PositionToSlot(containerTop-50, containerTop, FilterAfternoon))
		assert.Equal(t, 22, g.PositionToSlot(containerTop+12*24, containerTop, FilterAfternoon))
		assert.False(t, g.IsSlotVisible(22, FilterAfternoon))
	})
}

func TestColumnToWeekday(t *testing.T) {
	g := MustNewGrid(DefaultConfig())

	assert.Equal(t, Monday, g.ColumnToWeekday(10, 0))
	assert.Equal(t, Wednesday, g.ColumnToWeekday(2*96+5, 0))
	assert.Equal(t, Monday, g.ColumnToWeekday(-30, 0))
	assert.Equal(t, Sunday, g.ColumnToWeekday(5000, 0))
	assert.Equal(t, float64(96*4), g.WeekdayToPixelLeft(Friday))
}
