package api

import (
	"net/http"

	"github.com/jobtracker/backend/internal/models"
	"github.com/jobtracker/backend/pkg/repository"
)

// AdminHandler serves the read-only user listing plus user deletion. The
// admin view exposes application counts, never application bodies.
type AdminHandler struct {
	userRepo repository.UserRepo
}

func NewAdminHandler(ur repository.UserRepo) *AdminHandler {
	return &AdminHandler{userRepo: ur}
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userRepo.ListUserSummaries(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred")
		return
	}

	if users == nil {
		users = []models.UserSummary{}
	}
	writeJSON(w, users, http.StatusOK)
}

func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request", "Invalid user id")
		return
	}

	user, err := h.userRepo.GetUserSummary(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "Resource Not Found", "User not found")
		return
	}

	writeJSON(w, user, http.StatusOK)
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request", "Invalid user id")
		return
	}

	found, err := h.userRepo.DeleteUser(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "Resource Not Found", "User not found")
		return
	}

	writeJSON(w, confirmationResponse{Success: true, Message: "User deleted successfully"}, http.StatusOK)
}
