// Copyright (c) 2026 Filmorate. All rights reserved.
// Author: dev@filmorate.app

package validate_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmorate/filmorate/internal/platform/apperr"
	"github.com/filmorate/filmorate/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "login", "marty", false},
		{"empty_string", "login", "", true},
		{"whitespace_only", "login", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Email checks the email format validation rule.
*/
func TestValidator_Email(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		isValid bool
	}{
		{"valid_email", "test@example.com", true},
		{"invalid_format", "invalid-email", false},
		{"missing_domain", "test@", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Email("email", tt.email)

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_Dates covers the temporal bounds used for birthdays and release dates.
*/
func TestValidator_Dates(t *testing.T) {
	cinemaBirthday := time.Date(1895, time.December, 28, 0, 0, 0, 0, time.UTC)

	t.Run("future_birthday_rejected", func(t *testing.T) {
		v := &validate.Validator{}
		v.NotInFuture("birthday", time.Now().Add(24*time.Hour))
		assert.True(t, v.HasErrors())
	})

	t.Run("past_birthday_accepted", func(t *testing.T) {
		v := &validate.Validator{}
		v.NotInFuture("birthday", time.Date(1985, time.October, 26, 0, 0, 0, 0, time.UTC))
		assert.False(t, v.HasErrors())
	})

	t.Run("release_before_first_film_rejected", func(t *testing.T) {
		v := &validate.Validator{}
		v.NotBefore("release_date", time.Date(1890, time.January, 1, 0, 0, 0, 0, time.UTC), cinemaBirthday)
		assert.True(t, v.HasErrors())
	})

	t.Run("release_on_first_film_date_accepted", func(t *testing.T) {
		v := &validate.Validator{}
		v.NotBefore("release_date", cinemaBirthday, cinemaBirthday)
		assert.False(t, v.HasErrors())
	})
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	// Multi-rule validation
	err := v.
		Required("login", "marty").
		NoSpaces("login", "marty").
		Email("email", "marty@hillvalley.com").
		Positive("duration", 116).
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("login", "").          // Fails
		NoSpaces("login", "doc brown"). // Fails
		Email("email", "not-an-email"). // Fails
		Positive("duration", 0).        // Fails
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 4 errors
	assert.Len(t, ae.Details, 4)
}
