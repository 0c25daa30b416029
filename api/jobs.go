package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/jobtracker/backend/internal/models"
	"github.com/jobtracker/backend/pkg/repository"
)

type JobsHandler struct {
	appRepo repository.ApplicationRepo
}

func NewJobsHandler(ar repository.ApplicationRepo) *JobsHandler {
	return &JobsHandler{appRepo: ar}
}

type jobRequest struct {
	Title       string                   `json:"title"`
	Company     string                   `json:"company"`
	Status      models.ApplicationStatus `json:"status"`
	AppliedDate string                   `json:"appliedDate"`
	Deadline    *string                  `json:"deadline,omitempty"`
	Notes       *string                  `json:"notes,omitempty"`
}

type pageResponse struct {
	Content       []models.JobApplication `json:"content"`
	Page          int                     `json:"page"`
	Size          int                     `json:"size"`
	TotalElements int64                   `json:"totalElements"`
	TotalPages    int                     `json:"totalPages"`
	Last          bool                    `json:"last"`
}

type confirmationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// decodeJobRequest validates and decodes a create/update body.
func decodeJobRequest(w http.ResponseWriter, r *http.Request) (*jobRequest, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request", "Unable to read request body")
		return nil, false
	}
	if fields := validateBody(r.Context(), jobSchema, body); fields != nil {
		writeValidationError(w, fields)
		return nil, false
	}

	var req jobRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request", "Invalid request")
		return nil, false
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Company = strings.TrimSpace(req.Company)
	return &req, true
}

func (h *JobsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ident, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized", "Missing identity")
		return
	}

	req, ok := decodeJobRequest(w, r)
	if !ok {
		return
	}

	app := &models.JobApplication{
		UserID:      ident.UserID,
		Title:       req.Title,
		Company:     req.Company,
		Status:      req.Status,
		AppliedDate: req.AppliedDate,
		Deadline:    req.Deadline,
		Notes:       req.Notes,
	}

	id, err := h.appRepo.CreateApplication(r.Context(), app)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred")
		return
	}
	app.ID = id

	writeJSON(w, app, http.StatusCreated)
}

func (h *JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	ident, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized", "Missing identity")
		return
	}

	q := r.URL.Query()

	page := 0
	if p := q.Get("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v >= 0 {
			page = v
		}
	}
	size := 10
	if s := q.Get("size"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			size = v
		}
	}

	opts := repository.ListOptions{
		Page:    page,
		Size:    size,
		SortBy:  "appliedDate",
		SortDir: "desc",
	}
	if sb := q.Get("sortBy"); sb != "" {
		opts.SortBy = sb
	}
	if sd := q.Get("sortDir"); sd != "" {
		opts.SortDir = sd
	}

	var filter repository.ListFilter
	if st := q.Get("status"); st != "" {
		status := models.ApplicationStatus(strings.ToUpper(st))
		if !status.Valid() {
			writeValidationError(w, map[string]string{"status": "must be a valid application status"})
			return
		}
		filter.Status = status
	}
	filter.Keyword = q.Get("keyword")
	for _, p := range []struct {
		name string
		dst  *string
	}{
		{"startDate", &filter.StartDate},
		{"endDate", &filter.EndDate},
	} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", v); err != nil {
			writeValidationError(w, map[string]string{p.name: "must be an ISO date (2006-01-02)"})
			return
		}
		*p.dst = v
	}

	apps, total, err := h.appRepo.ListByOwner(r.Context(), ident.UserID, filter, opts)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidSortField) {
			writeError(w, http.StatusBadRequest, "Bad Request", "Invalid sort field: "+opts.SortBy)
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred")
		return
	}

	if apps == nil {
		apps = []models.JobApplication{}
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	writeJSON(w, pageResponse{
		Content:       apps,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
		Last:          page >= totalPages-1,
	}, http.StatusOK)
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

func (h *JobsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ident, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized", "Missing identity")
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request", "Invalid application id")
		return
	}

	app, err := h.appRepo.GetByIDAndOwner(r.Context(), id, ident.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred")
		return
	}
	if app == nil {
		writeError(w, http.StatusNotFound, "Resource Not Found", "Job application not found")
		return
	}

	writeJSON(w, app, http.StatusOK)
}

func (h *JobsHandler) Update(w http.ResponseWriter, r *http.Request) {
	ident, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized", "Missing identity")
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request", "Invalid application id")
		return
	}

	req, ok := decodeJobRequest(w, r)
	if !ok {
		return
	}

	app := &models.JobApplication{
		ID:          id,
		UserID:      ident.UserID,
		Title:       req.Title,
		Company:     req.Company,
		Status:      req.Status,
		AppliedDate: req.AppliedDate,
		Deadline:    req.Deadline,
		Notes:       req.Notes,
	}

	found, err := h.appRepo.UpdateApplication(r.Context(), app)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "Resource Not Found", "Job application not found")
		return
	}

	// re-read for the refreshed timestamps
	updated, err := h.appRepo.GetByIDAndOwner(r.Context(), id, ident.UserID)
	if err != nil || updated == nil {
		writeError(w, http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred")
		return
	}

	writeJSON(w, updated, http.StatusOK)
}

func (h *JobsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ident, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized", "Missing identity")
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request", "Invalid application id")
		return
	}

	found, err := h.appRepo.DeleteApplication(r.Context(), id, ident.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "Resource Not Found", "Job application not found")
		return
	}

	writeJSON(w, confirmationResponse{Success: true, Message: "Job application deleted successfully"}, http.StatusOK)
}

func (h *JobsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ident, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized", "Missing identity")
		return
	}

	total, err := h.appRepo.CountByOwner(r.Context(), ident.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred")
		return
	}

	counts, err := h.appRepo.CountByOwnerPerStatus(r.Context(), ident.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred")
		return
	}

	writeJSON(w, models.Stats{
		Total:     total,
		Applied:   counts[models.StatusApplied],
		Screening: counts[models.StatusScreening],
		Interview: counts[models.StatusInterview],
		Offer:     counts[models.StatusOffer],
		Accepted:  counts[models.StatusAccepted],
		Rejected:  counts[models.StatusRejected],
		Withdrawn: counts[models.StatusWithdrawn],
	}, http.StatusOK)
}
