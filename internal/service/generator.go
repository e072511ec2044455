package service

import (
	"github.com/brianvoe/gofakeit/v7"

	"github.com/userbase/userbase-server/internal/model"
)

// Generator produces fake user records for seeding and testing.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// GenerateUsers returns count candidate users with fake names, emails and
// roles. Emails are not guaranteed unique; callers deduplicate.
func (g *Generator) GenerateUsers(count int) []model.User {
	if count < 0 {
		count = 0
	}
	users := make([]model.User, count)
	for i := range users {
		users[i] = model.User{
			Name:  gofakeit.Name(),
			Email: gofakeit.Email(),
			Role:  gofakeit.JobTitle(),
		}
	}
	return users
}
