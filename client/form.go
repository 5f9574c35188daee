package client

import (
	"strings"
	"time"
)

// VoteForm is what the create page submits. Option count and the time range are left
// for the ledger to judge so its error kinds reach the user unchanged.
type VoteForm struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Options     []string  `json:"options"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
}

// Normalize trims text and drops blank options.
func (f *VoteForm) Normalize() {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)

	options := make([]string, 0, len(f.Options))
	for _, v := range f.Options {
		v = strings.TrimSpace(v)
		if v != "" {
			options = append(options, v)
		}
	}
	f.Options = options
}

func (f *VoteForm) Validate() error {
	if f.Title == "" {
		return &FormError{Field: "title", Reason: "is required"}
	}
	if f.StartDate.IsZero() || f.EndDate.IsZero() {
		return &FormError{Field: "dates", Reason: "start and end are required"}
	}
	if hasDupes(f.Options) {
		return &FormError{Field: "options", Reason: "cannot repeat"}
	}
	return nil
}

func hasDupes(choices []string) bool {
	for k, v := range choices {
		index := k + 1

		for ; index < len(choices); index++ {
			if strings.EqualFold(v, choices[index]) {
				return true
			}
		}
	}

	return false
}
