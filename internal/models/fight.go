package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// WinMethod represents the classified method of victory
type WinMethod string

const (
	MethodKO         WinMethod = "KO/TKO"
	MethodSubmission WinMethod = "Submission"
	MethodDecision   WinMethod = "Decision"
	MethodDraw       WinMethod = "Draw"
	MethodOther      WinMethod = "Other"
)

// FightResult indicates which side of a fight record a fighter was on
type FightResult string

const (
	ResultWin  FightResult = "Win"
	ResultLoss FightResult = "Loss"
)

// FightRecord represents an immutable historical fight result.
// Records are append-only; ingestion never mutates existing rows.
type FightRecord struct {
	ID          uuid.UUID `db:"id" json:"id" validate:"required,uuid4"`
	Winner      string    `db:"winner" json:"winner" validate:"required"`
	Loser       string    `db:"loser" json:"loser" validate:"required"`
	Method      string    `db:"method" json:"method"`
	Date        time.Time `db:"fight_date" json:"fight_date" validate:"required"`
	WeightClass string    `db:"weight_class" json:"weight_class"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// MethodRule maps a set of method substrings to a classified win method
type MethodRule struct {
	Method     WinMethod
	Substrings []string
}

// DefaultMethodRules is the injectable classification table for free-text
// method strings. Order matters: the first matching rule wins.
var DefaultMethodRules = []MethodRule{
	{Method: MethodKO, Substrings: []string{"ko", "tko", "knockout", "punches", "strikes", "kick", "knee", "elbow"}},
	{Method: MethodSubmission, Substrings: []string{"submission", "choke", "armbar", "triangle", "kimura", "guillotine", "tap"}},
	{Method: MethodDecision, Substrings: []string{"decision", "unanimous", "split", "majority"}},
	{Method: MethodDraw, Substrings: []string{"draw"}},
}

// ClassifyMethod buckets a free-text method string using the given rule
// table. Unmatched strings classify as Other.
func ClassifyMethod(method string, rules []MethodRule) WinMethod {
	lowered := strings.ToLower(method)
	for _, rule := range rules {
		for _, sub := range rule.Substrings {
			if strings.Contains(lowered, sub) {
				return rule.Method
			}
		}
	}
	return MethodOther
}

// ClassifiedMethod buckets the record's method using the default rules
func (f *FightRecord) ClassifiedMethod() WinMethod {
	return ClassifyMethod(f.Method, DefaultMethodRules)
}

// OpponentOf returns the opposite corner for the given fighter name, with
// the fighter's result. ok is false when the fighter did not take part.
func (f *FightRecord) OpponentOf(name string) (opponent string, result FightResult, ok bool) {
	switch {
	case strings.EqualFold(f.Winner, name):
		return f.Loser, ResultWin, true
	case strings.EqualFold(f.Loser, name):
		return f.Winner, ResultLoss, true
	default:
		return "", "", false
	}
}
