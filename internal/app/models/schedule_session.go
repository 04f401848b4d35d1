package models

import (
	"class-registration-service/internal/pkg/weekgrid"
	"time"
)

// ScheduleSession is the server-side state of one student's availability grid
// between requests: the bitmap, the active filter and any drag in flight.
type ScheduleSession struct {
	ID        string                 `json:"id"`
	StudentID string                 `json:"student_id"`
	Filter    weekgrid.Filter        `json:"filter"`
	Bitmap    *weekgrid.WeeklyBitmap `json:"bitmap"`
	Gesture   *weekgrid.Gesture      `json:"gesture,omitempty"`
	OriginX   float64                `json:"origin_x"`
	OriginY   float64                `json:"origin_y"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
	ExpiresAt time.Time              `json:"expires_at"`
}
