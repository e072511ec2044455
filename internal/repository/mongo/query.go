package mongo

import (
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/userbase/userbase-server/internal/model"
)

// filterFields maps the field names accepted in search filters onto their
// document keys.
var filterFields = map[string]string{
	"name":      "name",
	"email":     "email",
	"role":      "role",
	"createdAt": "created_at",
}

// pageFindOptions builds find options for one page of results ordered by
// creation timestamp descending. Ties on created_at fall back to the
// store's native order, which is not guaranteed stable across identical
// queries.
func pageFindOptions(page, pageSize int) *options.FindOptions {
	skip := int64(page-1) * int64(pageSize)
	return options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(int64(pageSize))
}

// buildFilter translates search filters into a Mongo query document.
// Filters are combined conjunctively; an empty set matches all documents.
func buildFilter(filters []model.SearchFilter) (bson.M, error) {
	if len(filters) == 0 {
		return bson.M{}, nil
	}

	clauses := make([]bson.M, 0, len(filters))
	for _, f := range filters {
		field, ok := filterFields[f.Field]
		if !ok {
			return nil, &model.InvalidFilterError{Field: f.Field, Reason: "unknown field"}
		}

		value, err := parseFilterValue(field, f.Value)
		if err != nil {
			return nil, &model.InvalidFilterError{Field: f.Field, Reason: err.Error()}
		}

		clause, err := operatorClause(field, f.Operator, value)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, clause)
	}

	if len(clauses) == 1 {
		return clauses[0], nil
	}
	return bson.M{"$and": clauses}, nil
}

func operatorClause(field string, op model.FilterOperator, value any) (bson.M, error) {
	switch op {
	case model.OpEqual:
		return bson.M{field: value}, nil
	case model.OpNotEqual:
		return bson.M{field: bson.M{"$ne": value}}, nil
	case model.OpGreaterThan:
		return bson.M{field: bson.M{"$gt": value}}, nil
	case model.OpGreaterOrEqual:
		return bson.M{field: bson.M{"$gte": value}}, nil
	case model.OpLessThan:
		return bson.M{field: bson.M{"$lt": value}}, nil
	case model.OpLessOrEqual:
		return bson.M{field: bson.M{"$lte": value}}, nil
	case model.OpContains:
		str, ok := value.(string)
		if !ok {
			return nil, &model.InvalidFilterError{Field: field, Reason: "contains requires a string field"}
		}
		return bson.M{field: bson.M{"$regex": regexp.QuoteMeta(str), "$options": "i"}}, nil
	default:
		return nil, &model.InvalidFilterError{Field: field, Reason: fmt.Sprintf("unknown operator %q", op)}
	}
}

func parseFilterValue(field, raw string) (any, error) {
	if field != "created_at" {
		return raw, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("value must be an RFC 3339 timestamp")
	}
	return t, nil
}
