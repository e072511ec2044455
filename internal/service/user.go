package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/userbase/userbase-server/internal/logger"
	"github.com/userbase/userbase-server/internal/model"
)

// DefaultPageSize is the page size used when the caller does not supply one.
const DefaultPageSize = 10

// User implements business operations for user records.
type User struct {
	store  model.UserStore
	logger *logger.Logger
}

func NewUser(store model.UserStore, logger *logger.Logger) *User {
	return &User{
		store:  store,
		logger: logger,
	}
}

// List returns one page of users ordered newest first. Page and page size
// below 1 are clamped to 1, not rejected.
func (s *User) List(ctx context.Context, page, pageSize int) (model.UserPage, error) {
	page, pageSize = clampPaging(page, pageSize)

	users, err := s.store.GetPage(ctx, page, pageSize)
	if err != nil {
		return model.UserPage{}, fmt.Errorf("failed to list users: %w", err)
	}

	return model.UserPage{Page: page, PageSize: pageSize, Count: len(users), Data: users}, nil
}

// Search returns one page of users matching all given filters. An empty
// filter set matches all users.
func (s *User) Search(ctx context.Context, filters []model.SearchFilter, page, pageSize int) (model.UserPage, error) {
	page, pageSize = clampPaging(page, pageSize)

	users, err := s.store.Search(ctx, filters, page, pageSize)
	if err != nil {
		var invalid *model.InvalidFilterError
		if errors.As(err, &invalid) {
			return model.UserPage{}, err
		}
		return model.UserPage{}, fmt.Errorf("failed to search users: %w", err)
	}

	return model.UserPage{Page: page, PageSize: pageSize, Count: len(users), Data: users}, nil
}

// Get returns the user with the given identity.
func (s *User) Get(ctx context.Context, id primitive.ObjectID) (model.User, error) {
	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// Create validates and stores a single user.
func (s *User) Create(ctx context.Context, user model.User) (model.User, error) {
	if err := model.ValidateUser(user); err != nil {
		return model.User{}, err
	}

	created, err := s.store.Create(ctx, user)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return created, nil
}

// Update replaces the full record for the given identity. A missing record
// surfaces as ErrNotFound; a replace that modifies nothing despite the
// record existing is a plain failure.
func (s *User) Update(ctx context.Context, id primitive.ObjectID, user model.User) error {
	if err := model.ValidateUser(user); err != nil {
		return err
	}

	if _, err := s.store.GetByID(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	modified, err := s.store.Replace(ctx, id, user)
	if err != nil {
		return fmt.Errorf("failed to replace user: %w", err)
	}
	if modified == 0 {
		return fmt.Errorf("replace of user %s modified no documents", id.Hex())
	}

	return nil
}

// Delete removes the user with the given identity. A missing record
// surfaces as ErrNotFound.
func (s *User) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.store.GetByID(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if deleted == 0 {
		return fmt.Errorf("delete of user %s removed no documents", id.Hex())
	}

	return nil
}

// Count returns the total number of stored users.
func (s *User) Count(ctx context.Context) (int64, error) {
	count, err := s.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}

	return count, nil
}

// Truncate removes every stored user.
func (s *User) Truncate(ctx context.Context) error {
	if err := s.store.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to truncate users: %w", err)
	}

	return nil
}

func clampPaging(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	return page, pageSize
}
