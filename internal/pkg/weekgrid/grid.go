// Package weekgrid models a weekly availability grid: a per-weekday slot bitmap,
// the geometry that maps slots to wall-clock times and pixel offsets, named
// time-window filters, run extraction, a drag-selection controller and the
// persisted "Weekday - HH:MM : HH:MM" schedule format.
//
// Nothing in this package performs I/O. A Grid is immutable once built and is
// safe to share; bitmaps and drag controllers are owned by a single caller.
package weekgrid

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfig  = errors.New("weekgrid: invalid grid configuration")
	ErrUnknownFilter  = errors.New("weekgrid: unknown time-window filter")
	ErrEmptySelection = errors.New("weekgrid: select at least one time slot")
)

// HourRange is a half-open [Start, End) range of wall-clock hours.
type HourRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Config holds the fixed grid parameters.
type Config struct {
	StartHour       int       `json:"startHour"`
	EndHour         int       `json:"endHour"`
	MinutesPerSlot  int       `json:"minutesPerSlot"`
	SlotPixelHeight float64   `json:"slotPixelHeight"`
	DayColumnWidth  float64   `json:"dayColumnWidth"`
	Morning         HourRange `json:"morning"`
	Afternoon       HourRange `json:"afternoon"`
	Evening         HourRange `json:"evening"`
}

// DefaultConfig is the 07:00-22:00 grid at 30 minute resolution.
func DefaultConfig() Config {
	return Config{
		StartHour:       7,
		EndHour:         22,
		MinutesPerSlot:  30,
		SlotPixelHeight: 24,
		DayColumnWidth:  96,
		Morning:         HourRange{Start: 7, End: 12},
		Afternoon:       HourRange{Start: 12, End: 17},
		Evening:         HourRange{Start: 17, End: 22},
	}
}

// Grid is a validated Config with precomputed slot bounds.
type Grid struct {
	cfg        Config
	totalSlots int
	windows    map[Filter]HourRange
}

// NewGrid validates cfg and builds a Grid.
func NewGrid(cfg Config) (*Grid, error) {
	if cfg.StartHour < 0 || cfg.EndHour > 24 || cfg.StartHour >= cfg.EndHour {
		return nil, fmt.Errorf("%w: hours %d-%d", ErrInvalidConfig, cfg.StartHour, cfg.EndHour)
	}
	if cfg.MinutesPerSlot <= 0 || 60%cfg.MinutesPerSlot != 0 {
		return nil, fmt.Errorf("%w: minutes per slot %d must divide an hour", ErrInvalidConfig, cfg.MinutesPerSlot)
	}
	if cfg.SlotPixelHeight <= 0 {
		return nil, fmt.Errorf("%w: slot pixel height %v", ErrInvalidConfig, cfg.SlotPixelHeight)
	}
	if cfg.DayColumnWidth <= 0 {
		return nil, fmt.Errorf("%w: day column width %v", ErrInvalidConfig, cfg.DayColumnWidth)
	}

	windows := map[Filter]HourRange{
		FilterAll:       {Start: cfg.StartHour, End: cfg.EndHour},
		FilterMorning:   cfg.Morning,
		FilterAfternoon: cfg.Afternoon,
		FilterEvening:   cfg.Evening,
	}
	for f, w := range windows {
		if w.Start < cfg.StartHour || w.End > cfg.EndHour || w.Start >= w.End {
			return nil, fmt.Errorf("%w: %s window %d-%d outside %d-%d", ErrInvalidConfig, f, w.Start, w.End, cfg.StartHour, cfg.EndHour)
		}
	}

	return &Grid{
		cfg:        cfg,
		totalSlots: (cfg.EndHour - cfg.StartHour) * 60 / cfg.MinutesPerSlot,
		windows:    windows,
	}, nil
}

// MustNewGrid is NewGrid for configurations known to be valid.
func MustNewGrid(cfg Config) *Grid {
	g, err := NewGrid(cfg)
	if err != nil {
		panic(err)
	}
	return g
}

func (g *Grid) Config() Config {
	return g.cfg
}

// TotalSlots is the number of slots in one day of the grid.
func (g *Grid) TotalSlots() int {
	return g.totalSlots
}

func (g *Grid) validSlot(slot int) bool {
	return slot >= 0 && slot < g.totalSlots
}
