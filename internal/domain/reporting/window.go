package reporting

import (
	"fmt"
	"time"
)

// Window is the time span a report covers. End is inclusive for daily and
// range reports (last instant of the closing day) and exclusive for monthly
// reports (first instant of the following month).
type Window struct {
	Start        time.Time
	End          time.Time
	EndExclusive bool
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	if t.Before(w.Start) {
		return false
	}
	if w.EndExclusive {
		return t.Before(w.End)
	}
	return !t.After(w.End)
}

const dayLayout = "2006-01-02"

// endOfDay is the last represented instant of the day containing t.
func endOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), loc)
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// Daily covers the calendar day containing now, both ends inclusive.
func Daily(now time.Time, loc *time.Location) Window {
	return Window{Start: startOfDay(now, loc), End: endOfDay(now, loc)}
}

// Monthly covers the calendar month containing now, end exclusive at the
// first instant of the next month.
func Monthly(now time.Time, loc *time.Location) Window {
	y, m, _ := now.In(loc).Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, loc)
	return Window{Start: start, End: start.AddDate(0, 1, 0), EndExclusive: true}
}

// Range covers the days from startDay through endDay, both "2006-01-02"
// strings interpreted in loc, both ends inclusive.
func Range(startDay, endDay string, loc *time.Location) (Window, error) {
	start, err := time.ParseInLocation(dayLayout, startDay, loc)
	if err != nil {
		return Window{}, fmt.Errorf("invalid start date %q", startDay)
	}
	end, err := time.ParseInLocation(dayLayout, endDay, loc)
	if err != nil {
		return Window{}, fmt.Errorf("invalid end date %q", endDay)
	}
	if end.Before(start) {
		return Window{}, fmt.Errorf("end date %s precedes start date %s", endDay, startDay)
	}
	return Window{Start: start, End: endOfDay(end, loc)}, nil
}
