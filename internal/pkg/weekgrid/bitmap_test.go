package weekgrid

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeeklyBitmap(t *testing.T) {
	g := MustNewGrid(DefaultConfig())

	t.Run("Empty Has Seven Full Days", func(t *testing.T) {
		b := g.NewBitmap()
		for d := Monday; d <= Sunday; d++ {
			assert.Len(t, b.Bits(d), 30)
		}
		assert.False(t, b.HasAnySelection())
		assert.Zero(t, b.Count())
	})

	t.Run("Toggle Flips Exactly One Bit", func(t *testing.T) {
		b := g.NewBitmap()
		b.Toggle(Friday, 7)
		assert.True(t, b.Get(Friday, 7))
		assert.Equal(t, 1, b.Count())

		b.Toggle(Friday, 7)
		assert.False(t, b.HasAnySelection())
	})

	t.Run("Toggle Out Of Range Is Ignored", func(t *testing.T) {
		b := g.NewBitmap()
		b.Toggle(Monday, 30)
		b.Toggle(Monday, -1)
		b.Toggle(Weekday(9), 3)
		assert.False(t, b.HasAnySelection())
	})

	t.Run("SetRange Inclusive", func(t *testing.T) {
		b := g.NewBitmap()
		b.SetRange(Monday, 4, 6, true)
		assert.Equal(t, 3, b.Count())
		assert.True(t, b.Get(Monday, 4))
		assert.True(t, b.Get(Monday, 6))
		assert.False(t, b.Get(Monday, 7))
	})

	t.Run("SetRange Reversed Is Swapped", func(t *testing.T) {
		b := g.NewBitmap()
		b.SetRange(Sunday, 9, 5, true)
		c := g.NewBitmap()
		c.SetRange(Sunday, 5, 9, true)
		assert.True(t, b.Equal(c))
	})

	t.Run("SetRange Clips To Grid", func(t *testing.T) {
		b := g.NewBitmap()
		b.SetRange(Monday, 27, 40, true)
		assert.Equal(t, 3, b.Count())
	})

	t.Run("ClearRun", func(t *testing.T) {
		b := g.NewBitmap()
		b.SetRange(Tuesday, 0, 10, true)
		b.ClearRun(Run{Weekday: Tuesday, Start: 2, End: 4})
		assert.Equal(t, 8, b.Count())
		assert.False(t, b.Get(Tuesday, 3))
	})

	t.Run("Clone Is Independent", func(t *testing.T) {
		b := g.NewBitmap()
		b.Toggle(Monday, 1)
		c := b.Clone()
		c.Toggle(Monday, 2)
		assert.False(t, b.Get(Monday, 2))
		assert.False(t, b.Equal(c))
	})
}

func TestWeeklyBitmapJSON(t *testing.T) {
	g := MustNewGrid(DefaultConfig())

	t.Run("Round Trip", func(t *testing.T) {
		b := g.NewBitmap()
		b.SetRange(Wednesday, 3, 8, true)
		b.Toggle(Sunday, 29)

		data, err := json.Marshal(b)
		require.NoError(t, err)

		var decoded WeeklyBitmap
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.True(t, b.Equal(&decoded))
	})

	t.Run("Wrong Day Count", func(t *testing.T) {
		var decoded WeeklyBitmap
		err := json.Unmarshal([]byte(`{"totalSlots":2,"days":[[0,1]]}`), &decoded)
		assert.Error(t, err)
	})

	t.Run("Short Day", func(t *testing.T) {
		var decoded WeeklyBitmap
		err := json.Unmarshal([]byte(`{"totalSlots":2,"days":[[0,1],[0],[0,0],[0,0],[0,0],[0,0],[0,0]]}`), &decoded)
		assert.Error(t, err)
	})
}
