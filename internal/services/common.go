package services

import (
	"errors"

	"pool-market-client/internal/models"
	"pool-market-client/internal/validation"
)

// validateInput checks req and posts any field errors as one error
// notification. It reports whether req is valid.
func validateInput(v *validation.Validator, notifications *NotificationService, req any) bool {
	if v == nil {
		return true
	}
	err := v.Validate(req)
	if err == nil {
		return true
	}

	var fe validation.FieldErrors
	if errors.As(err, &fe) {
		notifications.AddLines(fe.Messages(), models.NotificationError, notifications.duration)
	} else {
		notifications.Add(err.Error(), models.NotificationError)
	}
	return false
}
