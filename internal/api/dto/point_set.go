package dto

import "time"

type CartesianPoint struct {
	X Float `json:"x"`
	Y Float `json:"y"`
	Z Float `json:"z"`
}

type GeographicPoint struct {
	Lon Float `json:"lon"`
	Lat Float `json:"lat"`
	Dep Float `json:"dep"`
}

type CreatePointSetRequest struct {
	Name       string            `json:"name"`
	Frame      string            `json:"frame"`
	Cartesian  []CartesianPoint  `json:"cartesian"`
	Geographic []GeographicPoint `json:"geographic"`
}

type CreatePointSetResponse struct {
	SetID int `json:"set_id"`
}

type PointSetResponse struct {
	SetID      int               `json:"set_id"`
	Name       string            `json:"name"`
	Frame      string            `json:"frame"`
	CreatedAt  time.Time         `json:"created_at"`
	Cartesian  []CartesianPoint  `json:"cartesian,omitempty"`
	Geographic []GeographicPoint `json:"geographic,omitempty"`
}

type PointSetSummary struct {
	SetID     int       `json:"set_id"`
	Name      string    `json:"name"`
	Frame     string    `json:"frame"`
	Count     int       `json:"count"`
	CreatedAt time.Time `json:"created_at"`
}

type ListPointSetsResponse struct {
	PointSets []PointSetSummary `json:"point_sets"`
}
