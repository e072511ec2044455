package model

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
	CreateMany(ctx context.Context, users []User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (User, error)
	GetPage(ctx context.Context, page, pageSize int) ([]User, error)
	Search(ctx context.Context, filters []SearchFilter, page, pageSize int) ([]User, error)
	Replace(ctx context.Context, id primitive.ObjectID, user User) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	DeleteAll(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}

// User represents a stored user record.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Role      string             `bson:"role,omitempty" json:"role,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// UserPage is one page of users together with the pagination parameters
// that produced it.
type UserPage struct {
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
	Count    int    `json:"count"`
	Data     []User `json:"data"`
}
