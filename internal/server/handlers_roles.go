package server

import (
	"net/http"
)

// handleListRoles returns all job roles in the catalog.
func (s *Server) handleListRoles(w http.ResponseWriter, _ *http.Request) {
	roles := s.roles.List()
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"roles": roles,
		"total": len(roles),
	})
}

// handleGetRole returns a single job role by ID.
func (s *Server) handleGetRole(w http.ResponseWriter, r *http.Request) {
	roleID := r.PathValue("id")
	if roleID == "" {
		s.errorResponse(w, http.StatusBadRequest, "Role ID is required")
		return
	}

	role := s.roles.Get(roleID)
	if role == nil {
		err := &ErrRoleNotFound{RoleID: roleID}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, role)
}
