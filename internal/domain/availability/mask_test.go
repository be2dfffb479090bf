package availability

import (
	"errors"
	"testing"
)

func maskFromIndices(t *testing.T, indices ...int) Mask {
	t.Helper()
	slots := make([]bool, SlotsPerWeek)
	for _, i := range indices {
		slots[i] = true
	}
	m, err := Parse(slots)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return m
}

func TestParse_LengthIsExact(t *testing.T) {
	for _, n := range []int{0, 1, 167, 169, 336} {
		_, err := Parse(make([]bool, n))
		if !errors.Is(err, ErrInvalidMaskLength) {
			t.Fatalf("len=%d: expected ErrInvalidMaskLength, got %v", n, err)
		}
	}

	if _, err := Parse(make([]bool, SlotsPerWeek)); err != nil {
		t.Fatalf("len=168: unexpected error: %v", err)
	}
}

func TestMask_SlotIndexing(t *testing.T) {
	// Wed 18:00 is day 2, hour 18 -> index 66.
	m := maskFromIndices(t, 66)

	if !m.SlotAt(66) {
		t.Fatalf("expected slot 66 set")
	}
	if !m.Slot(2, 18) {
		t.Fatalf("expected (day=2, hour=18) set")
	}
	if m.Slot(2, 17) || m.Slot(1, 18) {
		t.Fatalf("expected neighbors unset")
	}
	if m.Slot(-1, 0) || m.Slot(7, 0) || m.Slot(0, 24) || m.SlotAt(-1) || m.SlotAt(SlotsPerWeek) {
		t.Fatalf("out-of-range lookups must report false")
	}
}

func TestMask_SlotsRoundTrip(t *testing.T) {
	slots := make([]bool, SlotsPerWeek)
	for i := 0; i < SlotsPerWeek; i += 7 {
		slots[i] = true
	}
	m, err := Parse(slots)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	got := m.Slots()
	if len(got) != SlotsPerWeek {
		t.Fatalf("expected %d slots, got %d", SlotsPerWeek, len(got))
	}
	for i := range slots {
		if got[i] != slots[i] {
			t.Fatalf("slot %d: got %v want %v", i, got[i], slots[i])
		}
	}
}

func TestMask_CountAndIsEmpty(t *testing.T) {
	var empty Mask
	if !empty.IsEmpty() || empty.Count() != 0 {
		t.Fatalf("zero mask must be empty with count 0")
	}

	m := maskFromIndices(t, 0, 63, 64, 127, 128, 167)
	if m.Count() != 6 {
		t.Fatalf("expected count 6 across word boundaries, got %d", m.Count())
	}
	if m.IsEmpty() {
		t.Fatalf("non-zero mask must not be empty")
	}

	full, err := Parse(allTrueSlots())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if full.Count() != SlotsPerWeek {
		t.Fatalf("expected full count %d, got %d", SlotsPerWeek, full.Count())
	}
}

func TestMask_Intersect(t *testing.T) {
	a := maskFromIndices(t, 10, 65, 130, 167)
	b := maskFromIndices(t, 10, 66, 130)

	got := a.Intersect(b)
	want := maskFromIndices(t, 10, 130)
	if got != want {
		t.Fatalf("intersect mismatch: got %v want %v", got.Slots(), want.Slots())
	}

	if got := a.Intersect(Mask{}); !got.IsEmpty() {
		t.Fatalf("intersect with empty mask must be empty")
	}
}

func allTrueSlots() []bool {
	slots := make([]bool, SlotsPerWeek)
	for i := range slots {
		slots[i] = true
	}
	return slots
}
