package requests

// PointerEvent addresses the grid either by page coordinates (x, y) or
// directly by cell (weekday, slot). Up and cancel need neither.
type PointerEvent struct {
	Phase   string   `json:"phase" validate:"required,oneof=down move up cancel"`
	X       *float64 `json:"x,omitempty"`
	Y       *float64 `json:"y,omitempty"`
	Weekday *int     `json:"weekday,omitempty" validate:"omitempty,gte=0,lte=6"`
	Slot    *int     `json:"slot,omitempty" validate:"omitempty,gte=0"`
}

func (e PointerEvent) HasCoordinates() bool {
	return e.X != nil && e.Y != nil
}

func (e PointerEvent) HasCell() bool {
	return e.Weekday != nil && e.Slot != nil
}

type ApplyPointerEvents struct {
	ContainerLeft float64        `json:"container_left"`
	ContainerTop  float64        `json:"container_top"`
	Events        []PointerEvent `json:"events" validate:"required,min=1,dive"`
}

type ChangeFilter struct {
	Filter string `json:"filter" validate:"required"`
}

type DeleteRun struct {
	Weekday *int `json:"weekday" validate:"required,gte=0,lte=6"`
	Start   *int `json:"start" validate:"required,gte=0"`
	End     *int `json:"end" validate:"required,gte=0"`
}
