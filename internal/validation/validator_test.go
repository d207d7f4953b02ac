package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name     string  `json:"name" validate:"required,max=5"`
	Email    string  `json:"email" validate:"required,emailaddr"`
	Date     string  `json:"date" validate:"required,isodate"`
	Guests   int     `json:"guests" validate:"required,min=1,max=20"`
	Duration string  `json:"duration" validate:"omitempty,sample_duration"`
	Price    float64 `json:"price" validate:"gt=0"`
}

func newTestValidator() *Validator {
	v := New()
	v.RegisterSet("sample_duration", "2 hours", "Half day")
	return v
}

func TestCheckValid(t *testing.T) {
	v := newTestValidator()
	errs := v.Check(sample{
		Name:     "Thabo",
		Email:    "thabo@example.co.za",
		Date:     "2026-10-18",
		Guests:   20,
		Duration: "Half day",
		Price:    950,
	})
	assert.Empty(t, errs)
}

func TestCheckReportsEveryField(t *testing.T) {
	v := newTestValidator()
	errs := v.Check(sample{
		Name:     "Thabo Mokoena",
		Email:    "not-an-email",
		Date:     "tomorrow",
		Guests:   21,
		Duration: "1 week",
	})

	byField := make(map[string]string)
	for _, e := range errs {
		byField[e.Field] = e.Message
	}

	require.Len(t, byField, 6)
	assert.Equal(t, "name cannot exceed 5 characters", byField["name"])
	assert.Equal(t, "Please provide a valid email address", byField["email"])
	assert.Equal(t, "date must be a valid date (YYYY-MM-DD)", byField["date"])
	assert.Equal(t, "guests must be at most 20", byField["guests"])
	assert.Equal(t, "duration must be one of: 2 hours, Half day", byField["duration"])
	assert.Equal(t, "price must be greater than 0", byField["price"])
}

func TestCheckRequired(t *testing.T) {
	v := newTestValidator()
	errs := v.Check(sample{Price: 1})

	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"name", "email", "date", "guests"}, fields)
}

func TestEmailPattern(t *testing.T) {
	assert.True(t, EmailPattern.MatchString("guest@umzulu.co.za"))
	assert.False(t, EmailPattern.MatchString("guest@localhost"))
	assert.False(t, EmailPattern.MatchString("guest @example.com"))
	assert.False(t, EmailPattern.MatchString("@example.com"))
}
