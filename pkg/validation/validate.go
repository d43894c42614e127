// Package validation holds the input checks shared by the HTTP layer.
package validation

import (
	"fmt"
	"time"

	"journaldb/pkg/models"
)

// ValidateDate checks a sleep-day date key (YYYY-MM-DD).
func ValidateDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid date %q: want YYYY-MM-DD", date)
	}
	return nil
}

// ValidateScale checks a mood or intensity score. The scale is 1-5.
func ValidateScale(field string, v int) error {
	if v < 1 || v > 5 {
		return fmt.Errorf("invalid %s %d: want 1-5", field, v)
	}
	return nil
}

// ValidateChatRole checks a companion transcript role.
func ValidateChatRole(r models.ChatRole) error {
	switch r {
	case models.ChatRoleUser, models.ChatRoleAssistant:
		return nil
	}
	return fmt.Errorf("invalid chat role %q", r)
}

// ValidateContactRole checks a contact-thread message role.
func ValidateContactRole(r models.ContactRole) error {
	switch r {
	case models.ContactRoleMe, models.ContactRoleThem:
		return nil
	}
	return fmt.Errorf("invalid contact role %q", r)
}

// ValidateVisibility checks a diary visibility value.
func ValidateVisibility(v models.Visibility) error {
	switch v {
	case models.VisibilityPrivate, models.VisibilityPublic:
		return nil
	}
	return fmt.Errorf("invalid visibility %q", v)
}
