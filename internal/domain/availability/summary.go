package availability

import (
	"fmt"
	"strings"
)

const summaryNotSpecified = "Not specified"

// Summary is the profile-card rendering of a mask.
type Summary struct {
	HasAvailability bool     `json:"has_availability"`
	WeekdayBlocks   []string `json:"weekday_blocks"`
	WeekendBlocks   []string `json:"weekend_blocks"`
	Summary         string   `json:"summary"`
}

// Summarize formats a mask for display: one string per block, weekday
// blocks first, joined into a single comma-separated line. An empty mask
// summarizes as "Not specified".
func Summarize(m Mask) Summary {
	if m.IsEmpty() {
		return Summary{
			WeekdayBlocks: []string{},
			WeekendBlocks: []string{},
			Summary:       summaryNotSpecified,
		}
	}

	weekday := make([]string, 0, 4)
	weekend := make([]string, 0, 2)
	for _, b := range m.Blocks() {
		s := b.Display()
		if b.Group == GroupWeekend {
			weekend = append(weekend, s)
		} else {
			weekday = append(weekday, s)
		}
	}

	all := make([]string, 0, len(weekday)+len(weekend))
	all = append(all, weekday...)
	all = append(all, weekend...)

	return Summary{
		HasAvailability: true,
		WeekdayBlocks:   weekday,
		WeekendBlocks:   weekend,
		Summary:         strings.Join(all, ", "),
	}
}

// Display renders a block like "Weekdays 6-8 PM" or "Mon, Wed 9 AM-1 PM".
func (b Block) Display() string {
	return b.Label() + " " + formatHourRange(b.Start, b.End)
}

func formatHourRange(start, end int) string {
	if start == 0 && end == HoursPerDay {
		return "All day"
	}
	sm := meridiem(start)
	em := meridiem(end)
	if sm == em {
		return fmt.Sprintf("%d-%d %s", hour12(start), hour12(end), em)
	}
	return fmt.Sprintf("%d %s-%d %s", hour12(start), sm, hour12(end), em)
}

func hour12(h int) int {
	h = h % HoursPerDay
	if h%12 == 0 {
		return 12
	}
	return h % 12
}

func meridiem(h int) string {
	// h may be 24 when a run reaches the end of the day; that boundary
	// instant is midnight.
	if h >= 12 && h < HoursPerDay {
		return "PM"
	}
	return "AM"
}
