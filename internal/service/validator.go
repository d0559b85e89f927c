// Package service orchestrates profile freshness, fight record ingestion,
// matchup analysis and market report generation.
package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/yourusername/octagon-edge/internal/models"
)

// DataValidator validates ingested data before persistence
type DataValidator struct {
	validate *validator.Validate
}

// NewDataValidator creates a new data validator
func NewDataValidator() *DataValidator {
	return &DataValidator{
		validate: validator.New(),
	}
}

// ValidateProfile validates a normalized fighter profile against its
// struct constraints
func (v *DataValidator) ValidateProfile(profile *models.FighterProfile) []string {
	var errs []string

	if err := v.validate.Struct(profile); err != nil {
		if validationErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fieldErr := range validationErrs {
				errs = append(errs, fmt.Sprintf("%s failed %s", fieldErr.Field(), fieldErr.Tag()))
			}
		} else {
			errs = append(errs, err.Error())
		}
	}

	return errs
}

// ValidateFightRecord validates a fight record. Records with the same
// fighter on both sides or dated in the future are rejected.
func (v *DataValidator) ValidateFightRecord(record *models.FightRecord) []string {
	var errs []string

	if strings.TrimSpace(record.Winner) == "" {
		errs = append(errs, "winner is required")
	}
	if strings.TrimSpace(record.Loser) == "" {
		errs = append(errs, "loser is required")
	}
	if strings.EqualFold(record.Winner, record.Loser) && record.Winner != "" {
		errs = append(errs, "winner and loser are the same fighter")
	}
	if record.Date.IsZero() {
		errs = append(errs, "fight date is required")
	} else if record.Date.After(time.Now().Add(24 * time.Hour)) {
		errs = append(errs, "fight date is in the future")
	}

	return errs
}
