package schedules

import (
	"class-registration-service/internal/app/models"
	"class-registration-service/internal/pkg/dto/responses"
	"class-registration-service/internal/pkg/weekgrid"
	"strings"
)

// BuildSessionView renders a session the way the grid is drawn: viewport
// layout of the active filter, runs positioned per weekday column and the
// preview rectangle of a drag in flight.
func BuildSessionView(grid *weekgrid.Grid, session *models.ScheduleSession) *responses.ScheduleSession {
	filter := session.Filter
	if !filter.Valid() {
		filter = weekgrid.FilterAll
	}
	cfg := grid.Config()
	runs := grid.ExtractRuns(session.Bitmap)

	view := &responses.ScheduleSession{
		ID:            session.ID,
		Filter:        filter.String(),
		State:         string(weekgrid.StateIdle),
		Layout:        buildLayout(grid, filter),
		Bitmap:        session.Bitmap,
		SelectedSlots: session.Bitmap.Count(),
		Runs:          runs,
		Days:          make([]responses.DayColumn, 0, weekgrid.DaysPerWeek),
		Summary:       weekgrid.FormatForSubmission(runs),
		ExpiresAt:     session.ExpiresAt,
	}

	if session.Gesture != nil {
		rect := session.Gesture.Rect()
		view.State = string(weekgrid.StateDragging)
		view.Preview = &rect
		view.PreviewMode = string(session.Gesture.Mode)
	}

	for day := weekgrid.Monday; day <= weekgrid.Sunday; day++ {
		column := responses.DayColumn{
			Weekday: int(day),
			Label:   day.Label(),
			Left:    grid.WeekdayToPixelLeft(day),
			Blocks:  []responses.RunBlock{},
		}
		for _, run := range grid.ExtractVisibleRuns(session.Bitmap, day, filter) {
			column.Blocks = append(column.Blocks, responses.RunBlock{
				Run:    run,
				Top:    grid.SlotToPixelTop(run.Start, filter),
				Height: float64(run.Slots()) * cfg.SlotPixelHeight,
			})
		}
		view.Days = append(view.Days, column)
	}
	return view
}

func buildLayout(grid *weekgrid.Grid, filter weekgrid.Filter) responses.GridLayout {
	cfg := grid.Config()
	layout := responses.GridLayout{
		StartHour:       cfg.StartHour,
		EndHour:         cfg.EndHour,
		MinutesPerSlot:  cfg.MinutesPerSlot,
		TotalSlots:      grid.TotalSlots(),
		FilterStartSlot: grid.FilterStartSlot(filter),
		FilterEndSlot:   grid.FilterEndSlot(filter),
		SlotPixelHeight: cfg.SlotPixelHeight,
		DayColumnWidth:  cfg.DayColumnWidth,
	}
	for slot := layout.FilterStartSlot; slot <= layout.FilterEndSlot; slot++ {
		label := grid.SlotToTime(slot)
		layout.SlotLabels = append(layout.SlotLabels, responses.SlotLabel{
			Slot:   slot,
			Time:   label,
			Top:    grid.SlotToPixelTop(slot, filter),
			IsHour: strings.HasSuffix(label, ":00"),
		})
	}
	return layout
}
