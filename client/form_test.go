package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	form := VoteForm{
		Title:       "  Lunch  ",
		Description: " where to eat\n",
		Options:     []string{" Pizza", "", "   ", "Tacos "},
	}
	form.Normalize()

	assert.Equal(t, "Lunch", form.Title)
	assert.Equal(t, "where to eat", form.Description)
	assert.Equal(t, []string{"Pizza", "Tacos"}, form.Options)
}

func TestValidate(t *testing.T) {
	now := time.Unix(1700000000, 0)

	tests := []struct {
		name  string
		form  VoteForm
		field string
	}{
		{"valid", VoteForm{Title: "t", Options: []string{"a", "b"}, StartDate: now, EndDate: now.Add(time.Hour)}, ""},
		{"one option is left to the ledger", VoteForm{Title: "t", Options: []string{"a"}, StartDate: now, EndDate: now.Add(time.Hour)}, ""},
		{"reversed dates are left to the ledger", VoteForm{Title: "t", Options: []string{"a", "b"}, StartDate: now, EndDate: now.Add(-time.Hour)}, ""},
		{"no title", VoteForm{Options: []string{"a", "b"}, StartDate: now, EndDate: now.Add(time.Hour)}, "title"},
		{"no start", VoteForm{Title: "t", Options: []string{"a", "b"}, EndDate: now}, "dates"},
		{"dupes", VoteForm{Title: "t", Options: []string{"Pizza", "tacos", "PIZZA"}, StartDate: now, EndDate: now.Add(time.Hour)}, "options"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var formErr *FormError
			if assert.ErrorAs(t, err, &formErr) {
				assert.Equal(t, tt.field, formErr.Field)
			}
			assert.ErrorIs(t, err, ErrInvalidForm)
		})
	}
}
