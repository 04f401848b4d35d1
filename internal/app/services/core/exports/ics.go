package exports

import (
	"class-registration-service/internal/app/models"
	"class-registration-service/internal/pkg/weekgrid"
	"fmt"
	"strconv"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
)

const productID = "-//class-registration-service//schedule export//VI"

var icsWeekdays = [weekgrid.DaysPerWeek]string{"MO", "TU", "WE", "TH", "FR", "SA", "SU"}

// buildCalendar writes one weekly recurring event per run, starting in the
// week that begins at weekStart.
func buildCalendar(student *models.Student, runs []weekgrid.Run, weekStart time.Time, location *time.Location) ([]byte, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName("Lịch học - " + student.FullName)
	cal.SetXWRTimezone(location.String())

	stamp := time.Now().UTC()
	for i, run := range runs {
		start, err := clockOn(weekStart, run.Weekday, run.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := clockOn(weekStart, run.Weekday, run.EndTime)
		if err != nil {
			return nil, err
		}

		event := cal.AddEvent(fmt.Sprintf("%s-%d-%d-%d@class-registration-service", student.ID, run.Weekday, run.Start, i))
		event.SetDtStampTime(stamp)
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary("Lịch học " + run.Weekday.Label())
		event.SetDescription(fmt.Sprintf("%s - %s : %s", run.Weekday.Label(), run.StartTime, run.EndTime))
		event.AddRrule("FREQ=WEEKLY;BYDAY=" + icsWeekdays[run.Weekday])
	}
	return []byte(cal.Serialize()), nil
}

// clockOn places an "HH:MM" time on the given weekday of the week starting at
// weekStart, in weekStart's location.
func clockOn(weekStart time.Time, day weekgrid.Weekday, clock string) (time.Time, error) {
	h, m, found := strings.Cut(clock, ":")
	if !found {
		return time.Time{}, fmt.Errorf("malformed time %q", clock)
	}
	hour, err := strconv.Atoi(h)
	if err != nil {
		return time.Time{}, err
	}
	minute, err := strconv.Atoi(m)
	if err != nil {
		return time.Time{}, err
	}
	y, mo, d := weekStart.Date()
	return time.Date(y, mo, d+int(day), hour, minute, 0, 0, weekStart.Location()), nil
}
