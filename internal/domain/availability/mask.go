package availability

import (
	"errors"
	"fmt"
	"math/bits"
)

const (
	HoursPerDay  = 24
	DaysPerWeek  = 7
	SlotsPerWeek = HoursPerDay * DaysPerWeek
)

var (
	ErrInvalidMaskLength = errors.New("invalid mask length")
	ErrNoMasks           = errors.New("no masks")
)

// Mask is one week of hourly availability packed into three 64-bit words.
// Bit i covers the hour slot day*24+hour, where day 0 is Monday and hours
// are in the owner's declared timezone.
type Mask struct {
	words [3]uint64
}

// Parse validates a raw slot array and packs it into a Mask. The only
// invalid input is a wrong length; every combination of booleans is a
// legal week.
func Parse(slots []bool) (Mask, error) {
	if len(slots) != SlotsPerWeek {
		return Mask{}, fmt.Errorf("%w: got %d slots, want %d", ErrInvalidMaskLength, len(slots), SlotsPerWeek)
	}
	var m Mask
	for i, on := range slots {
		if on {
			m.words[i/64] |= 1 << uint(i%64)
		}
	}
	return m, nil
}

func (m Mask) SlotAt(i int) bool {
	if i < 0 || i >= SlotsPerWeek {
		return false
	}
	return m.words[i/64]&(1<<uint(i%64)) != 0
}

func (m Mask) Slot(day, hour int) bool {
	if day < 0 || day >= DaysPerWeek || hour < 0 || hour >= HoursPerDay {
		return false
	}
	return m.SlotAt(day*HoursPerDay + hour)
}

// Slots unpacks the mask back into the 168-element array form used at the
// storage and API boundaries.
func (m Mask) Slots() []bool {
	out := make([]bool, SlotsPerWeek)
	for i := range out {
		out[i] = m.SlotAt(i)
	}
	return out
}

// Count reports the number of available hours in the week.
func (m Mask) Count() int {
	return bits.OnesCount64(m.words[0]) + bits.OnesCount64(m.words[1]) + bits.OnesCount64(m.words[2])
}

func (m Mask) IsEmpty() bool {
	return m.words[0] == 0 && m.words[1] == 0 && m.words[2] == 0
}

// Intersect returns the slots available in both masks. Word-parallel, so
// combining many masks stays cheap.
func (m Mask) Intersect(o Mask) Mask {
	var out Mask
	for i := range m.words {
		out.words[i] = m.words[i] & o.words[i]
	}
	return out
}

func (m *Mask) set(day, hour int) {
	if day < 0 || day >= DaysPerWeek || hour < 0 || hour >= HoursPerDay {
		return
	}
	i := day*HoursPerDay + hour
	m.words[i/64] |= 1 << uint(i%64)
}
