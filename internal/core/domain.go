package core

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// MaxDescriptionLen bounds expense descriptions.
	MaxDescriptionLen = 200
	// MaxPayerLen bounds payer names.
	MaxPayerLen = 50

	// EvenBandCents is the tolerance window within which a net balance is
	// treated as settled. One cent absorbs the rounding drift introduced by
	// dividing the group total across participants.
	EvenBandCents int64 = 1
)

type (
	Money struct {
		Cents int64
	}

	// Expense is a single payment made by one person on behalf of the group.
	// The store owns identity and timestamps; the ledger only ever reads
	// immutable snapshots of these values.
	Expense struct {
		ID          int64
		Amount      Money
		Description string
		Payer       string
		CreatedAt   time.Time
		UpdatedAt   time.Time
	}

	// Settlement is a single directed payment instruction: From pays To.
	Settlement struct {
		From   string
		To     string
		Amount Money
	}

	// PersonSummary aggregates one participant's activity. Balance is the
	// signed net in cents (positive means the group owes this person).
	PersonSummary struct {
		Name         string
		TotalPaid    Money
		ExpenseCount int
		Balance      int64
	}
)

// Balance status tags derived from the sign of a net balance.
const (
	StatusOwes = "owes"
	StatusGets = "gets"
	StatusEven = "even"
)

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrEmptyDescription   = errors.New("empty description")
	ErrDescriptionTooLong = errors.New("description too long")
	ErrEmptyPayer         = errors.New("empty payer")
	ErrPayerTooLong       = errors.New("payer name too long")
	ErrNoParticipants     = errors.New("no participants in non-empty expense set")
)

var titleCaser = cases.Title(language.Und)

// NormalizePayer trims the name and title-cases each word, so "shantanu k"
// and "Shantanu K" refer to the same participant.
func NormalizePayer(s string) string {
	return titleCaser.String(strings.TrimSpace(s))
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (e Expense) Validate() error {
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	desc := strings.TrimSpace(e.Description)
	if desc == "" {
		return ErrEmptyDescription
	}
	if len(desc) > MaxDescriptionLen {
		return ErrDescriptionTooLong
	}
	payer := strings.TrimSpace(e.Payer)
	if payer == "" {
		return ErrEmptyPayer
	}
	if len(payer) > MaxPayerLen {
		return ErrPayerTooLong
	}
	return nil
}

// Status classifies a net balance in cents. Balances inside the even band
// are neither owed nor owing.
func Status(net int64) string {
	switch {
	case net > EvenBandCents:
		return StatusGets
	case net < -EvenBandCents:
		return StatusOwes
	default:
		return StatusEven
	}
}
