package availability

import (
	"errors"
	"testing"
)

func TestOverlap_EmptyInput(t *testing.T) {
	_, err := Overlap(nil)
	if !errors.Is(err, ErrNoMasks) {
		t.Fatalf("expected ErrNoMasks, got %v", err)
	}
}

func TestOverlap_SingleMaskIsIdentity(t *testing.T) {
	m := maskFromIndices(t, 18, 42, 43, 100)
	res, err := Overlap([]Mask{m})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Common != m {
		t.Fatalf("overlap of one mask must equal the mask")
	}
}

func TestOverlap_PairwiseAND(t *testing.T) {
	a := maskFromIndices(t, 18, 19, 42, 43, 167)
	b := maskFromIndices(t, 18, 43, 70, 167)

	res, err := Overlap([]Mask{a, b})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < SlotsPerWeek; i++ {
		want := a.SlotAt(i) && b.SlotAt(i)
		if res.Common.SlotAt(i) != want {
			t.Fatalf("slot %d: got %v want %v", i, res.Common.SlotAt(i), want)
		}
	}
}

func TestOverlap_MondayEveningScenario(t *testing.T) {
	// m1: Mon 18:00-19:59 and Wed 18:00-19:59. m2: Mon 18:00-18:59 plus
	// all of Tuesday. Only Mon 18:00 survives.
	m1 := maskFromIndices(t, 18, 19, 66, 67)

	tueAllDay := make([]int, 0, HoursPerDay)
	for h := 0; h < HoursPerDay; h++ {
		tueAllDay = append(tueAllDay, HoursPerDay+h)
	}
	m2 := maskFromIndices(t, append([]int{18}, tueAllDay...)...)

	res, err := Overlap([]Mask{m1, m2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Common.Count() != 1 || !res.Common.SlotAt(18) {
		t.Fatalf("expected only slot 18, got %v", res.Common.Slots())
	}

	if len(res.Blocks) != 1 {
		t.Fatalf("expected one block, got %+v", res.Blocks)
	}
	b := res.Blocks[0]
	if b.Start != 18 || b.End != 19 || len(b.Days) != 1 || b.Days[0] != 0 {
		t.Fatalf("unexpected block %+v", b)
	}

	sum := Summarize(res.Common)
	if !sum.HasAvailability {
		t.Fatalf("expected HasAvailability=true")
	}
	if sum.Summary != "Mon 6-7 PM" {
		t.Fatalf("unexpected summary %q", sum.Summary)
	}
}

func TestOverlap_DisjointMasks(t *testing.T) {
	a := maskFromIndices(t, 10, 20, 30)
	b := maskFromIndices(t, 11, 21, 31)

	res, err := Overlap([]Mask{a, b})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Common.IsEmpty() {
		t.Fatalf("expected empty intersection")
	}
	if len(res.Blocks) != 0 {
		t.Fatalf("expected no blocks, got %+v", res.Blocks)
	}

	sum := Summarize(res.Common)
	if sum.HasAvailability {
		t.Fatalf("expected HasAvailability=false")
	}
	if sum.Summary != "Not specified" {
		t.Fatalf("unexpected summary %q", sum.Summary)
	}
}

func TestOverlap_ThreeMasks(t *testing.T) {
	a := maskFromIndices(t, 18, 19, 20)
	b := maskFromIndices(t, 19, 20, 21)
	c := maskFromIndices(t, 20, 21, 22)

	res, err := Overlap([]Mask{a, b, c})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Common.Count() != 1 || !res.Common.SlotAt(20) {
		t.Fatalf("expected only slot 20, got %v", res.Common.Slots())
	}
}
