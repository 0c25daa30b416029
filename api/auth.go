package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jobtracker/backend/internal/models"
	"github.com/jobtracker/backend/pkg/repository"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	userRepo      repository.UserRepo
	jwtSecret     string
	tokenDuration time.Duration
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
func NewAuthHandler(ur repository.UserRepo, jwtSecret string, tokenDuration time.Duration) *AuthHandler {
	return &AuthHandler{userRepo: ur, jwtSecret: jwtSecret, tokenDuration: tokenDuration}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token    string      `json:"token"`
	UserID   int64       `json:"userId"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     models.Role `json:"role"`
}

type availabilityResponse struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request", "Unable to read request body")
		return
	}
	if fields := validateBody(r.Context(), registerSchema, body); fields != nil {
		writeValidationError(w, fields)
		return
	}

	var req registerRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request", "Invalid request")
		return
	}

	ctx := r.Context()

	// Pre-checks give friendly messages; the UNIQUE constraints stay
	// authoritative when a concurrent register slips between check and insert.
	taken, err := h.userRepo.UsernameExists(ctx, req.Username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred")
		return
	}
	if taken {
		writeError(w, http.StatusBadRequest, "Conflict", "Username is already taken")
		return
	}

	registered, err := h.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred")
		return
	}
	if registered {
		writeError(w, http.StatusBadRequest, "Conflict", "Email is already registered")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred")
		return
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}

	id, err := h.userRepo.CreateUser(ctx, user)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			writeError(w, http.StatusBadRequest, "Conflict", "Username or email is already taken")
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred")
		return
	}
	user.ID = id

	tokenStr, err := issueToken(h.jwtSecret, h.tokenDuration, user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred")
		return
	}

	writeJSON(w, tokenResponse{
		Token:    tokenStr,
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}, http.StatusCreated)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request", "Unable to read request body")
		return
	}
	if fields := validateBody(r.Context(), loginSchema, body); fields != nil {
		writeValidationError(w, fields)
		return
	}

	var req loginRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request", "Invalid request")
		return
	}

	user, err := h.userRepo.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred")
		return
	}
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized", "Invalid username or password")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized", "Invalid username or password")
		return
	}

	tokenStr, err := issueToken(h.jwtSecret, h.tokenDuration, user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred")
		return
	}

	writeJSON(w, tokenResponse{
		Token:    tokenStr,
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}, http.StatusOK)
}

// CheckUsername is a convenience for pre-registration UX. Not authoritative:
// register still rejects duplicates under races.
func (h *AuthHandler) CheckUsername(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		writeError(w, http.StatusBadRequest, "Bad Request", "username is required")
		return
	}

	exists, err := h.userRepo.UsernameExists(r.Context(), username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred")
		return
	}

	msg := "Username is available"
	if exists {
		msg = "Username is already taken"
	}
	writeJSON(w, availabilityResponse{Available: !exists, Message: msg}, http.StatusOK)
}

func (h *AuthHandler) CheckEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeError(w, http.StatusBadRequest, "Bad Request", "email is required")
		return
	}

	exists, err := h.userRepo.EmailExists(r.Context(), email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred")
		return
	}

	msg := "Email is available"
	if exists {
		msg = "Email is already registered"
	}
	writeJSON(w, availabilityResponse{Available: !exists, Message: msg}, http.StatusOK)
}
