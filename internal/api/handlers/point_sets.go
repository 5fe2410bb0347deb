package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"point-set-service/internal/api/dto"
	"point-set-service/internal/domain"
	"point-set-service/internal/platform/obs"
	"point-set-service/internal/services"
	"strconv"
	"strings"
)

// PointSetHandler exposes create, read, list and delete endpoints for point sets.
type PointSetHandler struct {
	Service      *services.PointSetService
	MaxBodyBytes int64
}

// Collection handles /point-sets.
func (h *PointSetHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		w.Header().Set("Allow", http.MethodGet+", "+http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// Item handles /point-sets/{id}.
func (h *PointSetHandler) Item(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodDelete {
		w.Header().Set("Allow", http.MethodGet+", "+http.MethodDelete)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusBadRequest, "id must be a positive integer")
		return
	}

	if r.Method == http.MethodDelete {
		h.delete(w, r, id)
		return
	}
	h.get(w, r, id)
}

func (h *PointSetHandler) list(w http.ResponseWriter, r *http.Request) {
	infos, err := h.Service.List(r.Context())
	if err != nil {
		log.Printf("req_id=%s list point sets failed: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListPointSetsResponse{PointSets: make([]dto.PointSetSummary, 0, len(infos))}
	for _, info := range infos {
		res.PointSets = append(res.PointSets, dto.PointSetSummary{
			SetID:     info.SetID,
			Name:      info.Name,
			Frame:     string(info.Frame),
			Count:     info.Count,
			CreatedAt: info.CreatedAt,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *PointSetHandler) create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePointSetRequest

	body := r.Body
	if h.MaxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, h.MaxBodyBytes)
	}
	dec := json.NewDecoder(body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	set := &domain.PointSet{
		Name:  req.Name,
		Frame: domain.Frame(strings.ToLower(strings.TrimSpace(req.Frame))),
	}
	for _, p := range req.Cartesian {
		set.Cartesian = append(set.Cartesian, domain.CartesianPoint{
			X: float64(p.X),
			Y: float64(p.Y),
			Z: float64(p.Z),
		})
	}
	for _, p := range req.Geographic {
		set.Geographic = append(set.Geographic, domain.GeographicPoint{
			Lon: float64(p.Lon),
			Lat: float64(p.Lat),
			Dep: float64(p.Dep),
		})
	}

	id, err := h.Service.Create(r.Context(), set)
	switch {
	case errors.Is(err, domain.ErrInvalidPointSet):
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, domain.ErrDuplicateName):
		writeError(w, r, http.StatusConflict, "point set name already exists")
		return
	case err != nil:
		log.Printf("req_id=%s create point set failed: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Location", "/point-sets/"+strconv.Itoa(id))
	writeJSON(w, r, http.StatusCreated, dto.CreatePointSetResponse{SetID: id})
}

func (h *PointSetHandler) get(w http.ResponseWriter, r *http.Request, id int) {
	set, err := h.Service.Get(r.Context(), id)
	if errors.Is(err, domain.ErrPointSetNotFound) {
		writeError(w, r, http.StatusNotFound, "point set not found")
		return
	}
	if err != nil {
		log.Printf("req_id=%s get point set failed: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.PointSetResponse{
		SetID:     set.SetID,
		Name:      set.Name,
		Frame:     string(set.Frame),
		CreatedAt: set.CreatedAt,
	}
	if set.Frame == domain.FrameCartesian {
		res.Cartesian = make([]dto.CartesianPoint, 0, len(set.Cartesian))
		for _, p := range set.Cartesian {
			res.Cartesian = append(res.Cartesian, dto.CartesianPoint{
				X: dto.Float(p.X),
				Y: dto.Float(p.Y),
				Z: dto.Float(p.Z),
			})
		}
	}
	if set.Frame == domain.FrameGeographic {
		res.Geographic = make([]dto.GeographicPoint, 0, len(set.Geographic))
		for _, p := range set.Geographic {
			res.Geographic = append(res.Geographic, dto.GeographicPoint{
				Lon: dto.Float(p.Lon),
				Lat: dto.Float(p.Lat),
				Dep: dto.Float(p.Dep),
			})
		}
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *PointSetHandler) delete(w http.ResponseWriter, r *http.Request, id int) {
	err := h.Service.Delete(r.Context(), id)
	if errors.Is(err, domain.ErrPointSetNotFound) {
		writeError(w, r, http.StatusNotFound, "point set not found")
		return
	}
	if err != nil {
		log.Printf("req_id=%s delete point set failed: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
