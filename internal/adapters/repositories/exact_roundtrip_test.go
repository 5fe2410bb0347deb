package repositories

import (
	"context"
	"math"
	"point-set-service/internal/domain"
	"point-set-service/internal/ports"
	"testing"

	"github.com/stretchr/testify/require"
)

var edgeScalars = []struct {
	name string
	v    domain.Scalar
}{
	{"negative zero", math.Copysign(0, -1)},
	{"positive zero", 0},
	{"positive inf", math.Inf(1)},
	{"negative inf", math.Inf(-1)},
	{"nan", math.NaN()},
	{"smallest denormal", math.SmallestNonzeroFloat64},
	{"max", math.MaxFloat64},
	{"integer valued", 42},
	{"fraction", -117.2},
}

func requireSameBits(t *testing.T, want, got domain.Scalar, field string) {
	t.Helper()
	require.Equalf(t, math.Float64bits(want), math.Float64bits(got),
		"%s: want %v (%#x), got %v (%#x)", field, want, math.Float64bits(want), got, math.Float64bits(got))
}

func testExactRoundTrip(t *testing.T, repo ports.PointSetRepository) {
	ctx := context.Background()

	for _, tt := range edgeScalars {
		t.Run(tt.name, func(t *testing.T) {
			cart := &domain.PointSet{
				Name:      "cartesian " + tt.name,
				Frame:     domain.FrameCartesian,
				Cartesian: []domain.CartesianPoint{{X: tt.v, Y: 1, Z: tt.v}},
			}
			id, err := repo.CreatePointSet(ctx, cart)
			require.NoError(t, err)

			got, err := repo.GetPointSet(ctx, id)
			require.NoError(t, err)
			require.Len(t, got.Cartesian, 1)
			requireSameBits(t, tt.v, got.Cartesian[0].X, "x")
			requireSameBits(t, 1, got.Cartesian[0].Y, "y")
			requireSameBits(t, tt.v, got.Cartesian[0].Z, "z")

			geo := &domain.PointSet{
				Name:       "geographic " + tt.name,
				Frame:      domain.FrameGeographic,
				Geographic: []domain.GeographicPoint{{Lon: tt.v, Lat: tt.v, Dep: tt.v}},
			}
			id, err = repo.CreatePointSet(ctx, geo)
			require.NoError(t, err)

			got, err = repo.GetPointSet(ctx, id)
			require.NoError(t, err)
			require.Len(t, got.Geographic, 1)
			requireSameBits(t, tt.v, got.Geographic[0].Lon, "lon")
			requireSameBits(t, tt.v, got.Geographic[0].Lat, "lat")
			requireSameBits(t, tt.v, got.Geographic[0].Dep, "dep")
		})
	}
}

func TestSqliteExactRoundTrip(t *testing.T) {
	testExactRoundTrip(t, newSqliteRepo(t))
}

func TestMemoryExactRoundTrip(t *testing.T) {
	testExactRoundTrip(t, NewMemoryPointSetRepository())
}
