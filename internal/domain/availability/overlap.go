package availability

// Result is the shared availability of a set of users.
type Result struct {
	Common Mask
	Blocks []Block
}

// Overlap intersects all masks slot-by-slot and derives display blocks
// from the combined mask. An empty intersection is a valid result; only
// an empty input is an error.
func Overlap(masks []Mask) (Result, error) {
	if len(masks) == 0 {
		return Result{}, ErrNoMasks
	}
	common := masks[0]
	for _, m := range masks[1:] {
		common = common.Intersect(m)
	}
	return Result{Common: common, Blocks: common.Blocks()}, nil
}
