package domain

import (
	"fmt"
	"strings"
	"time"
)

// Frame names the coordinate system a point set is expressed in.
type Frame string

const (
	FrameCartesian  Frame = "cartesian"
	FrameGeographic Frame = "geographic"
)

func (f Frame) Valid() bool {
	return f == FrameCartesian || f == FrameGeographic
}

// Represents a named, ordered batch of points sharing one frame.
// Only the slice matching Frame is populated; point order is significant
// and preserved through storage.
type PointSet struct {
	SetID      int
	Name       string
	Frame      Frame
	Cartesian  []CartesianPoint
	Geographic []GeographicPoint
	CreatedAt  time.Time
}

// Listing row for a stored point set, without its points.
type PointSetInfo struct {
	SetID     int
	Name      string
	Frame     Frame
	Count     int
	CreatedAt time.Time
}

// Number of points held in the set's frame.
func (s *PointSet) Len() int {
	switch s.Frame {
	case FrameCartesian:
		return len(s.Cartesian)
	case FrameGeographic:
		return len(s.Geographic)
	}
	return 0
}

func (s *PointSet) Info() PointSetInfo {
	return PointSetInfo{
		SetID:     s.SetID,
		Name:      s.Name,
		Frame:     s.Frame,
		Count:     s.Len(),
		CreatedAt: s.CreatedAt,
	}
}

// Clone returns a deep copy; the point slices are not shared.
func (s *PointSet) Clone() *PointSet {
	if s == nil {
		return nil
	}

	out := *s
	if s.Cartesian != nil {
		out.Cartesian = append([]CartesianPoint(nil), s.Cartesian...)
	}
	if s.Geographic != nil {
		out.Geographic = append([]GeographicPoint(nil), s.Geographic...)
	}
	return &out
}

// CheckShape verifies the set is structurally storable.
// Coordinate values are never inspected.
func (s *PointSet) CheckShape() error {
	if s == nil {
		return fmt.Errorf("check point set: %w: set is nil", ErrInvalidPointSet)
	}

	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("check point set: %w: name must be non-empty", ErrInvalidPointSet)
	}

	switch s.Frame {
	case FrameCartesian:
		if len(s.Geographic) > 0 {
			return fmt.Errorf("check point set %q: %w: cartesian set carries geographic points", s.Name, ErrInvalidPointSet)
		}
	case FrameGeographic:
		if len(s.Cartesian) > 0 {
			return fmt.Errorf("check point set %q: %w: geographic set carries cartesian points", s.Name, ErrInvalidPointSet)
		}
	default:
		return fmt.Errorf("check point set %q: %w: unknown frame %q", s.Name, ErrInvalidPointSet, s.Frame)
	}

	return nil
}
