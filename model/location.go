package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrBadLocation is returned when a location is not an [x, y] pair.
var ErrBadLocation = errors.New("location must be [x, y]")

// Location is a grid coordinate. (0,0) is a real cell; absence is always
// reported with a separate ok flag, never with a zero Location.
type Location struct {
	X int
	Y int
}

// Loc is shorthand for building a Location in tests and tables.
func Loc(x, y int) Location { return Location{X: x, Y: y} }

func (l Location) String() string { return fmt.Sprintf("(%d,%d)", l.X, l.Y) }

// Add offsets l by (dx, dy).
func (l Location) Add(dx, dy int) Location { return Location{X: l.X + dx, Y: l.Y + dy} }

// Less orders locations by X then Y. Used wherever iteration order
// must be deterministic.
func (l Location) Less(o Location) bool {
	if l.X != o.X {
		return l.X < o.X
	}
	return l.Y < o.Y
}

// WalkDist is the Chebyshev distance: diagonal steps cost the same as
// orthogonal ones.
func WalkDist(a, b Location) int {
	return max(Abs(a.X-b.X), Abs(a.Y-b.Y))
}

// MarshalJSON encodes a location as [x, y], the engine's tuple format.
func (l Location) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{l.X, l.Y})
}

// UnmarshalJSON accepts exactly [x, y]. Anything shorter, longer or null
// is an error rather than a silent (0,0).
func (l *Location) UnmarshalJSON(b []byte) error {
	var xy []int
	if err := json.Unmarshal(b, &xy); err != nil {
		return fmt.Errorf("unmarshal location: %w", err)
	}
	if len(xy) != 2 {
		return fmt.Errorf("unmarshal location: %w: got %s", ErrBadLocation, b)
	}
	l.X, l.Y = xy[0], xy[1]
	return nil
}

// Sign returns -1, 0 or 1.
func Sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// Abs is the integer absolute value.
func Abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
