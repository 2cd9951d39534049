// Package grid provides pure integer-coordinate geometry for the encounter
// engine: Manhattan distance, coarse range bands, and band-transition costs.
package grid

// Point is a position on the encounter grid.
type Point struct {
	X int
	Y int
}

// Band is the coarse distance classification between two actors.
type Band string

// Range bands, ordered from closest to farthest.
const (
	BandEngaged Band = "engaged" // steps <= 1
	BandNear    Band = "near"    // steps <= 6
	BandFar     Band = "far"     // steps <= 12
	BandLong    Band = "long"    // anything farther
)

// bandLadder lists bands in adjacency order for transition-cost walks.
var bandLadder = []Band{BandEngaged, BandNear, BandFar, BandLong}

// stepCost is the movement cost of crossing from ladder rung i to rung i+1
// (and back): engaged<->near = 1, near<->far = 6, far<->long = 12.
var stepCost = []int{1, 6, 12}

// Valid reports whether b is one of the four defined bands.
func (b Band) Valid() bool {
	for _, lb := range bandLadder {
		if b == lb {
			return true
		}
	}
	return false
}

// index returns b's rung on the band ladder.
//
// Precondition: b must be a valid Band.
func (b Band) index() int {
	for i, lb := range bandLadder {
		if b == lb {
			return i
		}
	}
	panic("grid: index called with invalid band " + string(b))
}

// Distance returns the Manhattan distance between p and q.
//
// Postcondition: Returns >= 0; Distance(p, q) == Distance(q, p).
func Distance(p, q Point) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

// BandFor classifies a step count into a range band.
//
// Postcondition: Returns BandEngaged for steps <= 1, BandNear for <= 6,
// BandFar for <= 12, BandLong otherwise.
func BandFor(steps int) Band {
	switch {
	case steps <= 1:
		return BandEngaged
	case steps <= 6:
		return BandNear
	case steps <= 12:
		return BandFar
	default:
		return BandLong
	}
}

// TransitionCost returns the movement cost of walking the band ladder from
// one band to another, summing the cost of every adjacent pair crossed.
//
// Precondition: from and to must be valid bands.
// Postcondition: Returns 0 iff from == to; TransitionCost(a, b) == TransitionCost(b, a).
func TransitionCost(from, to Band) int {
	i, j := from.index(), to.index()
	if i > j {
		i, j = j, i
	}
	cost := 0
	for k := i; k < j; k++ {
		cost += stepCost[k]
	}
	return cost
}

// StepToward returns the point one grid step closer to target, moving along
// the axis with the larger remaining delta first. Returns from unchanged
// when already at target.
//
// Postcondition: Distance(result, to) == max(0, Distance(from, to)-1).
func StepToward(from, to Point) Point {
	dx, dy := to.X-from.X, to.Y-from.Y
	if dx == 0 && dy == 0 {
		return from
	}
	if abs(dx) >= abs(dy) && dx != 0 {
		return Point{X: from.X + sign(dx), Y: from.Y}
	}
	return Point{X: from.X, Y: from.Y + sign(dy)}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	if v < 0 {
		return -1
	}
	return 1
}
