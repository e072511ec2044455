package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/userbase/userbase-server/internal/model"
	"github.com/userbase/userbase-server/internal/service"
	"github.com/userbase/userbase-server/internal/testutil"
)

type stubUserService struct {
	lastCall string
}

func (s *stubUserService) List(ctx context.Context, page, pageSize int) (model.UserPage, error) {
	s.lastCall = "List"
	return model.UserPage{Page: page, PageSize: pageSize}, nil
}

func (s *stubUserService) Search(ctx context.Context, filters []model.SearchFilter, page, pageSize int) (model.UserPage, error) {
	s.lastCall = "Search"
	return model.UserPage{Page: page, PageSize: pageSize}, nil
}

func (s *stubUserService) Get(ctx context.Context, id primitive.ObjectID) (model.User, error) {
	s.lastCall = "Get"
	return model.User{ID: id}, nil
}

func (s *stubUserService) Create(ctx context.Context, user model.User) (model.User, error) {
	s.lastCall = "Create"
	user.ID = primitive.NewObjectID()
	return user, nil
}

func (s *stubUserService) Update(ctx context.Context, id primitive.ObjectID, user model.User) error {
	s.lastCall = "Update"
	return nil
}

func (s *stubUserService) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.lastCall = "Delete"
	return nil
}

func (s *stubUserService) Count(ctx context.Context) (int64, error) {
	s.lastCall = "Count"
	return 0, nil
}

func (s *stubUserService) Truncate(ctx context.Context) error {
	s.lastCall = "Truncate"
	return nil
}

type stubBulkService struct{}

func (s *stubBulkService) BulkInsert(ctx context.Context, users []model.User) (service.BulkResult, error) {
	return service.BulkResult{Inserted: len(users)}, nil
}

func (s *stubBulkService) BulkInsertLoop(ctx context.Context, users []model.User) (service.BulkResult, error) {
	return service.BulkResult{Inserted: len(users)}, nil
}

type stubGenerator struct{}

func (s *stubGenerator) GenerateUsers(count int) []model.User {
	return make([]model.User, count)
}

func newTestRouter(users *stubUserService) http.Handler {
	r := New(users, &stubBulkService{}, &stubGenerator{}, "secret", testutil.MakeNoopLogger())
	return r.Register()
}

func TestRouter_Routes(t *testing.T) {
	id := primitive.NewObjectID().Hex()

	tests := []struct {
		name       string
		method     string
		target     string
		withKey    bool
		wantStatus int
		wantCall   string
	}{
		{name: "list v1", method: http.MethodGet, target: "/api/v1/users", wantStatus: http.StatusOK, wantCall: "List"},
		{name: "list v2", method: http.MethodGet, target: "/api/v2/users", wantStatus: http.StatusOK, wantCall: "List"},
		{name: "count wins over id segment", method: http.MethodGet, target: "/api/v1/users/count", wantStatus: http.StatusOK, wantCall: "Count"},
		{name: "get by id", method: http.MethodGet, target: "/api/v1/users/" + id, wantStatus: http.StatusOK, wantCall: "Get"},
		{name: "search requires key", method: http.MethodPost, target: "/api/v1/users/search", wantStatus: http.StatusUnauthorized},
		{name: "search with key", method: http.MethodPost, target: "/api/v1/users/search?page=1", withKey: true, wantStatus: http.StatusBadRequest},
		{name: "create requires key", method: http.MethodPost, target: "/api/v1/users", wantStatus: http.StatusUnauthorized},
		{name: "delete requires key", method: http.MethodDelete, target: "/api/v1/users/" + id, wantStatus: http.StatusUnauthorized},
		{name: "truncate with key", method: http.MethodDelete, target: "/api/v1/users/truncate", withKey: true, wantStatus: http.StatusOK, wantCall: "Truncate"},
		{name: "seed requires key", method: http.MethodPost, target: "/api/v1/seed/users", wantStatus: http.StatusUnauthorized},
		{name: "ping bypasses key", method: http.MethodGet, target: "/api/v1/debug/ping", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &stubUserService{}
			handler := newTestRouter(users)

			req := httptest.NewRequest(tt.method, tt.target, nil)
			if tt.withKey {
				req.Header.Set("x-api-key", "secret")
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCall != "" {
				assert.Equal(t, tt.wantCall, users.lastCall)
			}
		})
	}
}
