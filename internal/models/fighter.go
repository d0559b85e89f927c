package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Stance represents a fighter's stance
type Stance string

const (
	StanceOrthodox Stance = "Orthodox"
	StanceSouthpaw Stance = "Southpaw"
	StanceSwitch   Stance = "Switch"
	StanceUnknown  Stance = "Unknown"
)

// FighterProfile represents a fighter's normalized statistical profile
type FighterProfile struct {
	ID          uuid.UUID  `db:"id" json:"id" validate:"required,uuid4"`
	Name        string     `db:"name" json:"name" validate:"required"`
	HeightIn    float64    `db:"height_in" json:"height_in" validate:"gte=0"`
	ReachIn     float64    `db:"reach_in" json:"reach_in" validate:"gte=0"`
	Stance      Stance     `db:"stance" json:"stance" validate:"required,oneof=Orthodox Southpaw Switch Unknown"`
	DateOfBirth *time.Time `db:"date_of_birth" json:"date_of_birth"`
	SLPM        float64    `db:"slpm" json:"slpm" validate:"gte=0"` // significant strikes landed per minute
	SAPM        float64    `db:"sapm" json:"sapm" validate:"gte=0"` // significant strikes absorbed per minute
	StrAccuracy float64    `db:"str_accuracy" json:"str_accuracy" validate:"gte=0,lte=100"`
	StrDefense  float64    `db:"str_defense" json:"str_defense" validate:"gte=0,lte=100"`
	TDAvg       float64    `db:"td_avg" json:"td_avg" validate:"gte=0"` // takedowns per 15 minutes
	TDAccuracy  float64    `db:"td_accuracy" json:"td_accuracy" validate:"gte=0,lte=100"`
	TDDefense   float64    `db:"td_defense" json:"td_defense" validate:"gte=0,lte=100"`
	SubAvg      float64    `db:"sub_avg" json:"sub_avg" validate:"gte=0"` // submission attempts per 15 minutes
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

// NeedsUpdate reports whether the profile is older than the refresh window.
// This is a separate policy from the read cache TTL.
func (f *FighterProfile) NeedsUpdate(window time.Duration) bool {
	return time.Since(f.UpdatedAt) > window
}

// Age returns the fighter's age in years, or 0 when date of birth is unknown
func (f *FighterProfile) Age(now time.Time) int {
	if f.DateOfBirth == nil {
		return 0
	}
	years := now.Year() - f.DateOfBirth.Year()
	if now.YearDay() < f.DateOfBirth.YearDay() {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// HeightFormatted renders height inches back to the feet'inches" form
func (f *FighterProfile) HeightFormatted() string {
	if f.HeightIn <= 0 {
		return "N/A"
	}
	feet := int(f.HeightIn) / 12
	inches := int(f.HeightIn) % 12
	return fmt.Sprintf("%d'%d\"", feet, inches)
}
