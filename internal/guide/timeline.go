package guide

import (
	"strings"
	"time"
)

// Timeline returns the day label and the start-time label of each visible column.
//
// Column 0 starts at now rounded down to a slot boundary, counted from local
// midnight; column colStart therefore starts colStart slots later. The day label is
// "Today", "Tomorrow", or the weekday name for later days.
func Timeline(now time.Time, colStart, cols int, slot time.Duration) (day string, labels []string) {
	if slot <= 0 {
		slot = 30 * time.Minute
	}
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	elapsed := now.Sub(midnight)
	first := midnight.Add(elapsed / slot * slot).Add(time.Duration(colStart) * slot)

	switch days := calendarDays(now, first); {
	case days <= 0:
		day = "Today"
	case days == 1:
		day = "Tomorrow"
	default:
		day = first.Weekday().String()
	}

	labels = make([]string, 0, max(cols, 0))
	for i := range max(cols, 0) {
		labels = append(labels, SlotLabel(first.Add(time.Duration(i)*slot)))
	}
	return day, labels
}

// SlotLabel formats t on a 12-hour clock without a leading zero or a ":00" minute,
// e.g. "7pm", "7:30pm", "12am".
func SlotLabel(t time.Time) string {
	return strings.Replace(t.Format("3:04pm"), ":00", "", 1)
}

func calendarDays(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
