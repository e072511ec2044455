package model

import "net/mail"

const (
	maxNameLength  = 50
	maxEmailLength = 120
	maxRoleLength  = 30
)

// ValidateUser checks the user's shape against the record constraints:
// name required and bounded, email required with a valid format and bounded,
// role optional but bounded. It returns a *ValidationError listing every
// violation, or nil when the user is well formed.
func ValidateUser(user User) error {
	var violations []FieldViolation

	if user.Name == "" {
		violations = append(violations, FieldViolation{Field: "name", Message: "is required"})
	} else if len(user.Name) > maxNameLength {
		violations = append(violations, FieldViolation{Field: "name", Message: "must be at most 50 characters"})
	}

	if user.Email == "" {
		violations = append(violations, FieldViolation{Field: "email", Message: "is required"})
	} else {
		if len(user.Email) > maxEmailLength {
			violations = append(violations, FieldViolation{Field: "email", Message: "must be at most 120 characters"})
		}
		if _, err := mail.ParseAddress(user.Email); err != nil {
			violations = append(violations, FieldViolation{Field: "email", Message: "is not a valid email address"})
		}
	}

	if len(user.Role) > maxRoleLength {
		violations = append(violations, FieldViolation{Field: "role", Message: "must be at most 30 characters"})
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}
