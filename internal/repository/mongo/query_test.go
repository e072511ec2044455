package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/userbase/userbase-server/internal/model"
)

func TestPageFindOptions(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		pageSize int
		wantSkip int64
	}{
		{name: "first page", page: 1, pageSize: 10, wantSkip: 0},
		{name: "second page", page: 2, pageSize: 10, wantSkip: 10},
		{name: "small pages", page: 5, pageSize: 2, wantSkip: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := pageFindOptions(tt.page, tt.pageSize)

			require.NotNil(t, opts.Skip)
			require.NotNil(t, opts.Limit)
			assert.Equal(t, tt.wantSkip, *opts.Skip)
			assert.Equal(t, int64(tt.pageSize), *opts.Limit)
			assert.Equal(t, bson.D{{Key: "created_at", Value: -1}}, opts.Sort)
		})
	}
}

func TestBuildFilter(t *testing.T) {
	createdAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		filters []model.SearchFilter
		want    bson.M
	}{
		{
			name:    "empty filter set matches all",
			filters: nil,
			want:    bson.M{},
		},
		{
			name: "single equality",
			filters: []model.SearchFilter{
				{Field: "email", Operator: model.OpEqual, Value: "jane@example.com"},
			},
			want: bson.M{"email": "jane@example.com"},
		},
		{
			name: "not equal",
			filters: []model.SearchFilter{
				{Field: "role", Operator: model.OpNotEqual, Value: "admin"},
			},
			want: bson.M{"role": bson.M{"$ne": "admin"}},
		},
		{
			name: "contains escapes regex metacharacters",
			filters: []model.SearchFilter{
				{Field: "name", Operator: model.OpContains, Value: "a.b"},
			},
			want: bson.M{"name": bson.M{"$regex": `a\.b`, "$options": "i"}},
		},
		{
			name: "created_at comparison parses timestamp",
			filters: []model.SearchFilter{
				{Field: "createdAt", Operator: model.OpGreaterOrEqual, Value: "2024-03-01T12:00:00Z"},
			},
			want: bson.M{"created_at": bson.M{"$gte": createdAt}},
		},
		{
			name: "multiple filters combine with and",
			filters: []model.SearchFilter{
				{Field: "name", Operator: model.OpContains, Value: "jane"},
				{Field: "role", Operator: model.OpEqual, Value: "Engineer"},
			},
			want: bson.M{"$and": []bson.M{
				{"name": bson.M{"$regex": "jane", "$options": "i"}},
				{"role": "Engineer"},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildFilter(tt.filters)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildFilter_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		filters []model.SearchFilter
	}{
		{
			name: "unknown field",
			filters: []model.SearchFilter{
				{Field: "password", Operator: model.OpEqual, Value: "x"},
			},
		},
		{
			name: "unknown operator",
			filters: []model.SearchFilter{
				{Field: "name", Operator: "like", Value: "jane"},
			},
		},
		{
			name: "created_at with malformed timestamp",
			filters: []model.SearchFilter{
				{Field: "createdAt", Operator: model.OpLessThan, Value: "yesterday"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildFilter(tt.filters)

			var filterErr *model.InvalidFilterError
			require.ErrorAs(t, err, &filterErr)
		})
	}
}
