package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/userbase/userbase-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

// UserRepository persists users in a MongoDB collection. Each operation
// maps one-to-one onto a collection primitive and surfaces the driver's
// acknowledgment counts without interpretation.
type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// Create inserts a single user, assigning identity and creation time when
// absent.
func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	if _, err := r.db.users.InsertOne(ctx, user); err != nil {
		return model.User{}, classifyWriteError(err)
	}

	return user, nil
}

// CreateMany issues one unordered bulk insert for the whole batch. Unordered
// writes continue past per-document failures; the repository does not retry.
func (r *UserRepository) CreateMany(ctx context.Context, users []model.User) error {
	docs := make([]any, len(users))
	for i, user := range users {
		if user.ID.IsZero() {
			user.ID = primitive.NewObjectID()
		}
		if user.CreatedAt.IsZero() {
			user.CreatedAt = time.Now().UTC()
		}
		docs[i] = user
	}

	opts := options.InsertMany().SetOrdered(false)
	if _, err := r.db.users.InsertMany(ctx, docs, opts); err != nil {
		return classifyWriteError(err)
	}

	return nil
}

// GetByID returns the user with the given identity.
func (r *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (model.User, error) {
	var user model.User
	err := r.db.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// GetPage returns one page of users ordered by creation timestamp descending.
func (r *UserRepository) GetPage(ctx context.Context, page, pageSize int) ([]model.User, error) {
	return r.findPage(ctx, bson.M{}, page, pageSize)
}

// Search returns one page of users matching all the given filters.
func (r *UserRepository) Search(ctx context.Context, filters []model.SearchFilter, page, pageSize int) ([]model.User, error) {
	query, err := buildFilter(filters)
	if err != nil {
		return nil, err
	}
	return r.findPage(ctx, query, page, pageSize)
}

func (r *UserRepository) findPage(ctx context.Context, query bson.M, page, pageSize int) ([]model.User, error) {
	cursor, err := r.db.users.Find(ctx, query, pageFindOptions(page, pageSize))
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []model.User
	for cursor.Next(ctx) {
		var user model.User
		if err := cursor.Decode(&user); err != nil {
			return nil, fmt.Errorf("failed to decode user: %w", err)
		}
		users = append(users, user)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// Replace swaps the full document for the given identity and returns the
// store's modified count as-is.
func (r *UserRepository) Replace(ctx context.Context, id primitive.ObjectID, user model.User) (int64, error) {
	user.ID = id
	result, err := r.db.users.ReplaceOne(ctx, bson.M{"_id": id}, user)
	if err != nil {
		return 0, classifyWriteError(err)
	}

	return result.ModifiedCount, nil
}

// Delete removes the user with the given identity and returns the store's
// deleted count as-is.
func (r *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	result, err := r.db.users.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("failed to delete user: %w", err)
	}

	return result.DeletedCount, nil
}

// DeleteAll truncates the collection.
func (r *UserRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.users.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to delete users: %w", err)
	}

	return nil
}

// Count returns the number of users in the collection.
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.db.users.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}

	return count, nil
}

// classifyWriteError marks writes the store acknowledged but rejected,
// leaving communication failures wrapped as-is.
func classifyWriteError(err error) error {
	var writeErr mongo.WriteException
	var bulkErr mongo.BulkWriteException
	if errors.As(err, &writeErr) || errors.As(err, &bulkErr) {
		return fmt.Errorf("%w: %w", model.ErrWriteRejected, err)
	}
	return fmt.Errorf("failed to write user: %w", err)
}
