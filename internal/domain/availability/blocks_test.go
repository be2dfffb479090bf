package availability

import (
	"reflect"
	"testing"
)

func TestBlocks_EmptyMask(t *testing.T) {
	var m Mask
	if got := m.Blocks(); len(got) != 0 {
		t.Fatalf("expected no blocks, got %v", got)
	}

	sum := Summarize(m)
	if sum.HasAvailability {
		t.Fatalf("expected HasAvailability=false")
	}
	if sum.Summary != "Not specified" {
		t.Fatalf("expected summary %q, got %q", "Not specified", sum.Summary)
	}
	if len(sum.WeekdayBlocks) != 0 || len(sum.WeekendBlocks) != 0 {
		t.Fatalf("expected no block strings, got %v / %v", sum.WeekdayBlocks, sum.WeekendBlocks)
	}
}

func TestBlocks_AllTrueMask(t *testing.T) {
	m, err := Parse(allTrueSlots())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	got := m.Blocks()
	want := []Block{
		{Group: GroupWeekday, Days: []int{0, 1, 2, 3, 4}, Start: 0, End: 24},
		{Group: GroupWeekend, Days: []int{5, 6}, Start: 0, End: 24},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("blocks mismatch:\n got  %+v\n want %+v", got, want)
	}

	sum := Summarize(m)
	if !sum.HasAvailability {
		t.Fatalf("expected HasAvailability=true")
	}
	if sum.Summary != "Weekdays All day, Weekends All day" {
		t.Fatalf("unexpected summary %q", sum.Summary)
	}
}

func TestBlocks_MergesIdenticalRunsWithinGroup(t *testing.T) {
	// 6-8 PM every weekday, 9-11 AM both weekend days.
	var blocks []Block
	blocks = append(blocks, Block{Group: GroupWeekday, Days: []int{0, 1, 2, 3, 4}, Start: 18, End: 20})
	blocks = append(blocks, Block{Group: GroupWeekend, Days: []int{5, 6}, Start: 9, End: 11})
	m := FromBlocks(blocks)

	got := m.Blocks()
	if !reflect.DeepEqual(got, blocks) {
		t.Fatalf("blocks mismatch:\n got  %+v\n want %+v", got, blocks)
	}
	if got[0].Label() != "Weekdays" || got[1].Label() != "Weekends" {
		t.Fatalf("full-group runs must use the group label, got %q / %q", got[0].Label(), got[1].Label())
	}
}

func TestBlocks_DistinctRunsListSpecificDays(t *testing.T) {
	// Mon and Wed 6-8 PM, Tue 9-11 AM. No run covers the whole group,
	// so each block names its days.
	m := FromBlocks([]Block{
		{Group: GroupWeekday, Days: []int{0, 2}, Start: 18, End: 20},
		{Group: GroupWeekday, Days: []int{1}, Start: 9, End: 11},
	})

	got := m.Blocks()
	want := []Block{
		{Group: GroupWeekday, Days: []int{1}, Start: 9, End: 11},
		{Group: GroupWeekday, Days: []int{0, 2}, Start: 18, End: 20},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("blocks mismatch:\n got  %+v\n want %+v", got, want)
	}

	if got[0].Label() != "Tue" {
		t.Fatalf("expected label Tue, got %q", got[0].Label())
	}
	if got[1].Label() != "Mon, Wed" {
		t.Fatalf("expected label %q, got %q", "Mon, Wed", got[1].Label())
	}

	sum := Summarize(m)
	if sum.Summary != "Tue 9-11 AM, Mon, Wed 6-8 PM" {
		t.Fatalf("unexpected summary %q", sum.Summary)
	}
}

func TestBlocks_MultipleRunsPerDay(t *testing.T) {
	slots := make([]bool, SlotsPerWeek)
	// Fri 7-9 AM and Fri 8-10 PM: two runs on one day.
	for _, h := range []int{7, 8, 20, 21} {
		slots[4*HoursPerDay+h] = true
	}
	m, err := Parse(slots)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := []Block{
		{Group: GroupWeekday, Days: []int{4}, Start: 7, End: 9},
		{Group: GroupWeekday, Days: []int{4}, Start: 20, End: 22},
	}
	if got := m.Blocks(); !reflect.DeepEqual(got, want) {
		t.Fatalf("blocks mismatch:\n got  %+v\n want %+v", got, want)
	}
}

func TestBlocks_RoundTripIdempotence(t *testing.T) {
	cases := [][]bool{
		allTrueSlots(),
		make([]bool, SlotsPerWeek),
		scatterSlots(3),
		scatterSlots(11),
	}
	for i, slots := range cases {
		m, err := Parse(slots)
		if err != nil {
			t.Fatalf("case %d: parse: %v", i, err)
		}
		blocks := m.Blocks()
		rebuilt := FromBlocks(blocks)
		if rebuilt != m {
			t.Fatalf("case %d: FromBlocks(Blocks(m)) != m", i)
		}
		if !reflect.DeepEqual(rebuilt.Blocks(), blocks) {
			t.Fatalf("case %d: block derivation is not idempotent", i)
		}
	}
}

func TestFormatHourRange(t *testing.T) {
	cases := []struct {
		start, end int
		want       string
	}{
		{18, 20, "6-8 PM"},
		{18, 19, "6-7 PM"},
		{9, 11, "9-11 AM"},
		{9, 13, "9 AM-1 PM"},
		{0, 24, "All day"},
		{0, 1, "12-1 AM"},
		{11, 12, "11 AM-12 PM"},
		{23, 24, "11 PM-12 AM"},
		{12, 14, "12-2 PM"},
	}
	for _, c := range cases {
		if got := formatHourRange(c.start, c.end); got != c.want {
			t.Fatalf("formatHourRange(%d, %d) = %q, want %q", c.start, c.end, got, c.want)
		}
	}
}

func scatterSlots(step int) []bool {
	slots := make([]bool, SlotsPerWeek)
	for i := 0; i < SlotsPerWeek; i += step {
		slots[i] = true
	}
	return slots
}
