package availability

import (
	"sort"
	"strings"
)

type Group int

const (
	GroupWeekday Group = iota
	GroupWeekend
)

func (g Group) String() string {
	if g == GroupWeekend {
		return "Weekends"
	}
	return "Weekdays"
}

var dayNames = [DaysPerWeek]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Block is a maximal contiguous run of available hours shared by one or
// more days of the same group. End is exclusive: a block covering hours
// 18 and 19 has Start 18, End 20.
type Block struct {
	Group Group
	Days  []int
	Start int
	End   int
}

// Label is the coarsest day description that exactly covers the block's
// days: the group name when the run holds on every day of the group,
// otherwise the specific days.
func (b Block) Label() string {
	if len(b.Days) == groupSize(b.Group) {
		return b.Group.String()
	}
	names := make([]string, 0, len(b.Days))
	for _, d := range b.Days {
		if d >= 0 && d < DaysPerWeek {
			names = append(names, dayNames[d])
		}
	}
	return strings.Join(names, ", ")
}

func groupSize(g Group) int {
	if g == GroupWeekend {
		return 2
	}
	return 5
}

// Blocks extracts per-day runs of true slots and merges identical runs
// within the weekday (Mon-Fri) and weekend (Sat-Sun) groups. Output order
// is deterministic: weekday blocks first, then weekend, each ascending by
// start hour then end hour.
func (m Mask) Blocks() []Block {
	out := m.groupBlocks(GroupWeekday, 0, 5)
	return append(out, m.groupBlocks(GroupWeekend, 5, DaysPerWeek)...)
}

type hourRun struct {
	start, end int
}

func (m Mask) dayRuns(day int) []hourRun {
	var runs []hourRun
	start := -1
	for h := 0; h <= HoursPerDay; h++ {
		on := h < HoursPerDay && m.Slot(day, h)
		if on && start < 0 {
			start = h
		}
		if !on && start >= 0 {
			runs = append(runs, hourRun{start: start, end: h})
			start = -1
		}
	}
	return runs
}

func (m Mask) groupBlocks(g Group, fromDay, toDay int) []Block {
	daysByRun := make(map[hourRun][]int)
	var order []hourRun
	for d := fromDay; d < toDay; d++ {
		for _, r := range m.dayRuns(d) {
			if _, seen := daysByRun[r]; !seen {
				order = append(order, r)
			}
			daysByRun[r] = append(daysByRun[r], d)
		}
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].start != order[j].start {
			return order[i].start < order[j].start
		}
		return order[i].end < order[j].end
	})

	out := make([]Block, 0, len(order))
	for _, r := range order {
		out = append(out, Block{Group: g, Days: daysByRun[r], Start: r.start, End: r.end})
	}
	return out
}

// FromBlocks rebuilds a mask from derived blocks. Blocks(FromBlocks(bs))
// returns bs unchanged for any block list produced by Blocks.
func FromBlocks(blocks []Block) Mask {
	var m Mask
	for _, b := range blocks {
		for _, d := range b.Days {
			for h := b.Start; h < b.End; h++ {
				m.set(d, h)
			}
		}
	}
	return m
}
