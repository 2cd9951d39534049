package condition

// Cover is the degree of cover a character currently benefits from.
type Cover string

// Cover levels, from none to untargetable.
const (
	CoverNone          Cover = "none"
	CoverHalf          Cover = "half"
	CoverThreeQuarters Cover = "three_quarters"
	CoverTotal         Cover = "total"
)

// ParseCover normalises a cover string; empty means none.
//
// Postcondition: ok is false only for strings outside the four levels.
func ParseCover(s string) (Cover, bool) {
	switch Cover(s) {
	case "", CoverNone:
		return CoverNone, true
	case CoverHalf:
		return CoverHalf, true
	case CoverThreeQuarters:
		return CoverThreeQuarters, true
	case CoverTotal:
		return CoverTotal, true
	default:
		return CoverNone, false
	}
}

// Bonus returns the AC bonus granted by the cover level and whether the
// cover blocks targeting entirely.
//
// Postcondition: blocked is true only for CoverTotal, whose bonus is 0.
func (c Cover) Bonus() (bonus int, blocked bool) {
	switch c {
	case CoverHalf:
		return 2, false
	case CoverThreeQuarters:
		return 5, false
	case CoverTotal:
		return 0, true
	default:
		return 0, false
	}
}
