package weekgrid

import "fmt"

// Cell addresses one (weekday, absolute slot) position.
type Cell struct {
	Weekday Weekday `json:"weekday"`
	Slot    int     `json:"slot"`
}

// Mode is fixed for a whole gesture by the bit under the first press.
type Mode string

const (
	ModeSelect   Mode = "select"
	ModeDeselect Mode = "deselect"
)

// Phase is the device-independent pointer phase. Mouse and touch input are
// both translated to these four phases before reaching the controller.
type Phase string

const (
	PhaseDown   Phase = "down"
	PhaseMove   Phase = "move"
	PhaseUp     Phase = "up"
	PhaseCancel Phase = "cancel"
)

func ParsePhase(name string) (Phase, error) {
	switch p := Phase(name); p {
	case PhaseDown, PhaseMove, PhaseUp, PhaseCancel:
		return p, nil
	}
	return "", fmt.Errorf("weekgrid: unknown pointer phase %q", name)
}

// PointerEvent is a pointer sample in page coordinates.
type PointerEvent struct {
	Phase Phase   `json:"phase"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// State of the drag controller.
type State string

const (
	StateIdle     State = "idle"
	StateDragging State = "dragging"
)

// Gesture is the transient drag state between press and release.
type Gesture struct {
	Start   Cell `json:"start"`
	Current Cell `json:"current"`
	Mode    Mode `json:"mode"`
}

// Rect spans the weekdays and slots between a gesture's start and current cell.
type Rect struct {
	FromWeekday Weekday `json:"fromWeekday"`
	ToWeekday   Weekday `json:"toWeekday"`
	FromSlot    int     `json:"fromSlot"`
	ToSlot      int     `json:"toSlot"`
}

func (g Gesture) Rect() Rect {
	return Rect{
		FromWeekday: min(g.Start.Weekday, g.Current.Weekday),
		ToWeekday:   max(g.Start.Weekday, g.Current.Weekday),
		FromSlot:    min(g.Start.Slot, g.Current.Slot),
		ToSlot:      max(g.Start.Slot, g.Current.Slot),
	}
}

func (r Rect) Contains(c Cell) bool {
	return c.Weekday >= r.FromWeekday && c.Weekday <= r.ToWeekday &&
		c.Slot >= r.FromSlot && c.Slot <= r.ToSlot
}

// Cells is the number of cells in the rectangle.
func (r Rect) Cells() int {
	return int(r.ToWeekday-r.FromWeekday+1) * (r.ToSlot - r.FromSlot + 1)
}

// DragController turns pointer phases into rectangular bitmap edits.
// It owns the bitmap it was given for as long as it is in use.
type DragController struct {
	grid    *Grid
	bitmap  *WeeklyBitmap
	filter  Filter
	originX float64
	originY float64
	gesture *Gesture
}

// NewDragController starts an idle controller on b with the "all" filter.
func NewDragController(g *Grid, b *WeeklyBitmap) *DragController {
	return &DragController{grid: g, bitmap: b, filter: FilterAll}
}

// RestoreDragController rebuilds a controller from persisted state. A nil
// gesture means idle.
func RestoreDragController(g *Grid, b *WeeklyBitmap, f Filter, gesture *Gesture) *DragController {
	c := NewDragController(g, b)
	if f.Valid() {
		c.filter = f
	}
	if gesture != nil {
		gs := *gesture
		c.gesture = &gs
	}
	return c
}

func (c *DragController) Bitmap() *WeeklyBitmap {
	return c.bitmap
}

func (c *DragController) Filter() Filter {
	return c.filter
}

func (c *DragController) State() State {
	if c.gesture != nil {
		return StateDragging
	}
	return StateIdle
}

// Gesture returns a copy of the in-flight gesture, nil when idle.
func (c *DragController) Gesture() *Gesture {
	if c.gesture == nil {
		return nil
	}
	gs := *c.gesture
	return &gs
}

// Preview is the rectangle a release would commit.
func (c *DragController) Preview() (Rect, bool) {
	if c.gesture == nil {
		return Rect{}, false
	}
	return c.gesture.Rect(), true
}

// SetOrigin records the page position of the grid container's top-left corner.
func (c *DragController) SetOrigin(x, y float64) {
	c.originX, c.originY = x, y
}

// SetFilter switches the visible window. A gesture in flight is committed
// first so no preview survives a viewport change. The bitmap is otherwise
// untouched.
func (c *DragController) SetFilter(f Filter) error {
	if !f.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownFilter, string(f))
	}
	if c.gesture != nil {
		c.Cancel()
	}
	c.filter = f
	return nil
}

// Reset discards any gesture and swaps in an empty bitmap.
func (c *DragController) Reset() {
	c.gesture = nil
	c.bitmap = c.grid.NewBitmap()
}

// PointerDown starts a gesture on cell when idle. Pressing a selected cell
// starts a deselect gesture, pressing an empty one a select gesture.
// Cells hidden by the active filter are ignored.
func (c *DragController) PointerDown(cell Cell) bool {
	if c.gesture != nil {
		return false
	}
	if !cell.Weekday.Valid() || !c.grid.IsSlotVisible(cell.Slot, c.filter) {
		return false
	}
	mode := ModeSelect
	if c.bitmap.Get(cell.Weekday, cell.Slot) {
		mode = ModeDeselect
	}
	c.gesture = &Gesture{Start: cell, Current: cell, Mode: mode}
	return true
}

// PointerMove updates the current corner of the gesture. The bitmap is not
// changed until release.
func (c *DragController) PointerMove(cell Cell) bool {
	if c.gesture == nil {
		return false
	}
	c.gesture.Current = c.clampCell(cell)
	return true
}

// PointerUp commits the gesture rectangle and returns to idle. A press and
// release on the same cell toggles exactly that cell.
func (c *DragController) PointerUp() (Rect, bool) {
	return c.commit()
}

// Cancel ends a gesture whose release was lost (touch-cancel, pointer left the
// surface). The last known rectangle is committed so no preview is left stuck.
func (c *DragController) Cancel() (Rect, bool) {
	return c.commit()
}

// HandleCell dispatches one phase addressed by cell. Cell is ignored for up
// and cancel.
func (c *DragController) HandleCell(phase Phase, cell Cell) bool {
	switch phase {
	case PhaseDown:
		return c.PointerDown(cell)
	case PhaseMove:
		return c.PointerMove(cell)
	case PhaseUp:
		_, ok := c.PointerUp()
		return ok
	case PhaseCancel:
		_, ok := c.Cancel()
		return ok
	}
	return false
}

// HandlePointer resolves a page-coordinate event against the grid geometry and
// dispatches it.
func (c *DragController) HandlePointer(ev PointerEvent) bool {
	cell := c.grid.CellAt(ev.X, ev.Y, c.originX, c.originY, c.filter)
	return c.HandleCell(ev.Phase, cell)
}

func (c *DragController) commit() (Rect, bool) {
	if c.gesture == nil {
		return Rect{}, false
	}
	rect := c.gesture.Rect()
	value := c.gesture.Mode == ModeSelect
	for d := rect.FromWeekday; d <= rect.ToWeekday; d++ {
		c.bitmap.SetRange(d, rect.FromSlot, rect.ToSlot, value)
	}
	c.gesture = nil
	return rect, true
}

func (c *DragController) clampCell(cell Cell) Cell {
	return Cell{
		Weekday: Weekday(clamp(int(cell.Weekday), int(Monday), int(Sunday))),
		Slot:    clamp(cell.Slot, c.grid.FilterStartSlot(c.filter), c.grid.FilterEndSlot(c.filter)),
	}
}
