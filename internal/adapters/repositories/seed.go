package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"point-set-service/internal/domain"
	"point-set-service/internal/ports"
	"strings"
)

type CartesianSeed struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type GeographicSeed struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
	Dep float64 `json:"dep"`
}

type PointSetSeed struct {
	Name       string           `json:"name"`
	Frame      string           `json:"frame"`
	Cartesian  []CartesianSeed  `json:"cartesian"`
	Geographic []GeographicSeed `json:"geographic"`
}

// Populate the repository with point sets from a JSON file.
// Sets whose name already exists are skipped; the number inserted is returned.
func SeedFromJSON(ctx context.Context, repo ports.PointSetRepository, jsonPath string) (int, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("seed point sets: read %q: %w", jsonPath, err)
	}

	var data []PointSetSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return 0, fmt.Errorf("seed point sets: parse json: %w", err)
	}

	sets := make([]*domain.PointSet, 0, len(data))
	for i, item := range data {
		set := &domain.PointSet{
			Name:  strings.TrimSpace(item.Name),
			Frame: domain.Frame(strings.ToLower(strings.TrimSpace(item.Frame))),
		}
		for _, p := range item.Cartesian {
			set.Cartesian = append(set.Cartesian, domain.CartesianPoint{X: p.X, Y: p.Y, Z: p.Z})
		}
		for _, p := range item.Geographic {
			set.Geographic = append(set.Geographic, domain.GeographicPoint{Lon: p.Lon, Lat: p.Lat, Dep: p.Dep})
		}

		if err := set.CheckShape(); err != nil {
			return 0, fmt.Errorf("seed point sets: item #%d: %w", i+1, err)
		}
		sets = append(sets, set)
	}

	inserted := 0
	for _, set := range sets {
		if _, err := repo.CreatePointSet(ctx, set); err != nil {
			if errors.Is(err, domain.ErrDuplicateName) {
				continue
			}
			return inserted, fmt.Errorf("seed point sets: %w", err)
		}
		inserted++
	}

	return inserted, nil
}
