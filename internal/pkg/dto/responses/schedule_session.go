package responses

import (
	"class-registration-service/internal/pkg/weekgrid"
	"time"
)

type ScheduleSession struct {
	ID            string                 `json:"id"`
	Filter        string                 `json:"filter"`
	State         string                 `json:"state"`
	Layout        GridLayout             `json:"layout"`
	Bitmap        *weekgrid.WeeklyBitmap `json:"bitmap"`
	SelectedSlots int                    `json:"selected_slots"`
	Runs          []weekgrid.Run         `json:"runs"`
	Days          []DayColumn            `json:"days"`
	Preview       *weekgrid.Rect         `json:"preview,omitempty"`
	PreviewMode   string                 `json:"preview_mode,omitempty"`
	Summary       string                 `json:"summary"`
	ExpiresAt     time.Time              `json:"expires_at"`
}

// GridLayout describes the viewport of the active filter.
type GridLayout struct {
	StartHour       int         `json:"start_hour"`
	EndHour         int         `json:"end_hour"`
	MinutesPerSlot  int         `json:"minutes_per_slot"`
	TotalSlots      int         `json:"total_slots"`
	FilterStartSlot int         `json:"filter_start_slot"`
	FilterEndSlot   int         `json:"filter_end_slot"`
	SlotPixelHeight float64     `json:"slot_pixel_height"`
	DayColumnWidth  float64     `json:"day_column_width"`
	SlotLabels      []SlotLabel `json:"slot_labels"`
}

type SlotLabel struct {
	Slot   int     `json:"slot"`
	Time   string  `json:"time"`
	Top    float64 `json:"top"`
	IsHour bool    `json:"is_hour"`
}

// DayColumn lists the runs of one weekday that are visible under the active
// filter, already positioned in pixels.
type DayColumn struct {
	Weekday int        `json:"weekday"`
	Label   string     `json:"label"`
	Left    float64    `json:"left"`
	Blocks  []RunBlock `json:"blocks"`
}

type RunBlock struct {
	weekgrid.Run
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

type ScheduleSubmission struct {
	SubmissionID  string         `json:"submission_id"`
	Status        string         `json:"status"`
	Schedule      string         `json:"schedule"`
	Runs          []weekgrid.Run `json:"runs"`
	ReceiptObject string         `json:"receipt_object,omitempty"`
}
