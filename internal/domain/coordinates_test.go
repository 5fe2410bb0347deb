package domain

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestCartesianPointFields(t *testing.T) {
	p := CartesianPoint{X: 1.0, Y: 2.0, Z: 3.0}

	assert.Equal(t, 1.0, p.X)
	assert.Equal(t, 2.0, p.Y)
	assert.Equal(t, 3.0, p.Z)
}

func TestGeographicPointFields(t *testing.T) {
	p := GeographicPoint{Lon: -117.2, Lat: 32.9, Dep: 0.0}

	assert.Equal(t, -117.2, p.Lon)
	assert.Equal(t, 32.9, p.Lat)
	assert.Equal(t, 0.0, p.Dep)
}

func TestPointsKeepAssignedValues(t *testing.T) {
	values := []Scalar{0, -0.5, 1e-300, 6.371e6, -1.7976931348623157e308}

	for _, a := range values {
		for _, b := range values {
			c := CartesianPoint{X: a, Y: b, Z: a - b}
			if c.X != a || c.Y != b || c.Z != a-b {
				t.Fatalf("cartesian = %+v, want {%v %v %v}", c, a, b, a-b)
			}

			g := GeographicPoint{Lon: b, Lat: a, Dep: b * 2}
			if g.Lon != b || g.Lat != a || g.Dep != b*2 {
				t.Fatalf("geographic = %+v, want {%v %v %v}", g, b, a, b*2)
			}
		}
	}
}

func TestPointCopyIsIndependent(t *testing.T) {
	src := CartesianPoint{X: 1, Y: 2, Z: 3}
	cp := src
	cp.X = 10
	cp.Z = -3

	assert.Equal(t, CartesianPoint{X: 1, Y: 2, Z: 3}, src)
	assert.Equal(t, CartesianPoint{X: 10, Y: 2, Z: -3}, cp)

	geo := GeographicPoint{Lon: -117.2, Lat: 32.9}
	moved := geo
	moved.Dep = 1500

	assert.Equal(t, 0.0, geo.Dep)
	assert.Equal(t, 1500.0, moved.Dep)
}

func TestZeroValuePoints(t *testing.T) {
	var c CartesianPoint
	var g GeographicPoint

	assert.Equal(t, CartesianPoint{}, c)
	assert.Equal(t, GeographicPoint{}, g)
}

// The structs mirror three packed doubles; callers exchanging raw buffers rely on it.
func TestPointLayout(t *testing.T) {
	var c CartesianPoint
	assert.Equal(t, uintptr(24), unsafe.Sizeof(c))
	assert.Equal(t, uintptr(0), unsafe.Offsetof(c.X))
	assert.Equal(t, uintptr(8), unsafe.Offsetof(c.Y))
	assert.Equal(t, uintptr(16), unsafe.Offsetof(c.Z))

	var g GeographicPoint
	assert.Equal(t, uintptr(24), unsafe.Sizeof(g))
	assert.Equal(t, uintptr(0), unsafe.Offsetof(g.Lon))
	assert.Equal(t, uintptr(8), unsafe.Offsetof(g.Lat))
	assert.Equal(t, uintptr(16), unsafe.Offsetof(g.Dep))
}
