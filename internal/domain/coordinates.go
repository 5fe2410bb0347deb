package domain

// Scalar is the numeric type shared by every coordinate field.
// Units (meters, degrees, radians) are fixed by whoever produces the points.
type Scalar = float64

// Location in a Euclidean x/y/z frame.
type CartesianPoint struct {
	X Scalar
	Y Scalar
	Z Scalar
}

// Location in a geodetic frame: two angles and a linear depth.
type GeographicPoint struct {
	Lon Scalar
	Lat Scalar
	Dep Scalar
}
