package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/userbase/userbase-server/internal/logger"
	"github.com/userbase/userbase-server/internal/model"
)

// UserService defines business operations for user management.
type UserService interface {
	List(ctx context.Context, page, pageSize int) (model.UserPage, error)
	Search(ctx context.Context, filters []model.SearchFilter, page, pageSize int) (model.UserPage, error)
	Get(ctx context.Context, id primitive.ObjectID) (model.User, error)
	Create(ctx context.Context, user model.User) (model.User, error)
	Update(ctx context.Context, id primitive.ObjectID, user model.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
	Truncate(ctx context.Context) error
}

const (
	defaultPageSizeV1 = 10
	defaultPageSizeV2 = 2
)

// User handles HTTP endpoints for users.
type User struct {
	userService UserService
	logger      *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(userService UserService, logger *logger.Logger) *User {
	return &User{
		userService: userService,
		logger:      logger,
	}
}

// ListV1 returns a page of users with the v1 default page size.
func (h *User) ListV1(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, defaultPageSizeV1)
}

// ListV2 returns a page of users with the v2 default page size.
func (h *User) ListV2(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, defaultPageSizeV2)
}

func (h *User) list(w http.ResponseWriter, r *http.Request, defaultPageSize int) {
	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "pageSize", defaultPageSize)

	result, err := h.userService.List(r.Context(), page, pageSize)
	if err != nil {
		h.logger.Error("User handler: list failed", "error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Search returns a page of users matching the posted filter list.
func (h *User) Search(w http.ResponseWriter, r *http.Request) {
	var filters []model.SearchFilter
	if err := json.NewDecoder(r.Body).Decode(&filters); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body", Detail: err.Error()})
		return
	}

	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "pageSize", defaultPageSizeV1)

	result, err := h.userService.Search(r.Context(), filters, page, pageSize)
	if err != nil {
		h.logger.Error("User handler: search failed", "error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Get returns a single user by ID.
func (h *User) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	user, err := h.userService.Get(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Create validates and stores a single user.
func (h *User) Create(w http.ResponseWriter, r *http.Request) {
	var user model.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body", Detail: err.Error()})
		return
	}

	created, err := h.userService.Create(r.Context(), user)
	if err != nil {
		h.logger.Error("User handler: create failed", "error", err.Error())
		handleError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/v1/users/%s", created.ID.Hex()))
	writeJSON(w, http.StatusCreated, created)
}

// Update replaces the user with the given ID.
func (h *User) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var user model.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body", Detail: err.Error()})
		return
	}

	if err := h.userService.Update(r.Context(), id, user); err != nil {
		h.logger.Error("User handler: update failed", "id", id.Hex(), "error", err.Error())
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete removes the user with the given ID.
func (h *User) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.userService.Delete(r.Context(), id); err != nil {
		h.logger.Error("User handler: delete failed", "id", id.Hex(), "error", err.Error())
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Count returns the total number of users.
func (h *User) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.userService.Count(r.Context())
	if err != nil {
		h.logger.Error("User handler: count failed", "error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"count": count})
}

// Truncate removes all users.
func (h *User) Truncate(w http.ResponseWriter, r *http.Request) {
	if err := h.userService.Truncate(r.Context()); err != nil {
		h.logger.Error("User handler: truncate failed", "error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "All users have been deleted."})
}

// pathID parses the 24-character hex ID path segment. A malformed ID does
// not name any stored user, so it yields 404 rather than 400.
func pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "user not found"})
		return primitive.NilObjectID, false
	}
	return id, true
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
