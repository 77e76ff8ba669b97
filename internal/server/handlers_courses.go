package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/skillgap-ai/skillgap-api/internal/ranking"
	"github.com/skillgap-ai/skillgap-api/internal/types"
)

// handleListCourses returns the course catalog filtered and sorted per the
// query parameters. Facet parameters repeat (?provider=A&provider=B); range
// bounds and the sort mode are single-valued.
func (s *Server) handleListCourses(w http.ResponseWriter, r *http.Request) {
	state, err := filterStateFromQuery(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	courses, err := s.repo.FetchCourses(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to fetch courses")
		return
	}

	ranked := ranking.Rank(courses, state)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"courses": ranked,
		"total":   len(ranked),
	})
}

// filterStateFromQuery builds a FilterState from URL query parameters,
// starting from the wide-open defaults.
func filterStateFromQuery(r *http.Request) (types.FilterState, error) {
	state := types.DefaultFilterState()
	q := r.URL.Query()

	state.Providers = q["provider"]
	state.Levels = q["level"]
	state.Priorities = q["priority"]
	state.Tags = q["tag"]

	var err error
	if state.MinDuration, err = intParam(q.Get("min_duration"), 0); err != nil {
		return state, fmt.Errorf("invalid min_duration: %s", q.Get("min_duration"))
	}
	if state.MaxDuration, err = intParam(q.Get("max_duration"), types.DefaultMaxDuration); err != nil {
		return state, fmt.Errorf("invalid max_duration: %s", q.Get("max_duration"))
	}
	if state.MinPrice, err = floatParam(q.Get("min_price"), 0); err != nil {
		return state, fmt.Errorf("invalid min_price: %s", q.Get("min_price"))
	}
	if state.MaxPrice, err = floatParam(q.Get("max_price"), types.DefaultMaxPrice); err != nil {
		return state, fmt.Errorf("invalid max_price: %s", q.Get("max_price"))
	}

	if sortBy := q.Get("sort"); sortBy != "" {
		mode := types.SortMode(sortBy)
		if !types.ValidSortMode(mode) {
			return state, fmt.Errorf("invalid sort mode: %s", sortBy)
		}
		state.SortBy = mode
	}

	return state, nil
}

func intParam(value string, defaultValue int) (int, error) {
	if value == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(value)
}

func floatParam(value string, defaultValue float64) (float64, error) {
	if value == "" {
		return defaultValue, nil
	}
	return strconv.ParseFloat(value, 64)
}
