// Package rules is the single source of truth for listing field constraints.
// Validation and persistence both consume the same Rules value so the two
// can never diverge. A Rules value is immutable after construction and safe
// for concurrent use.
package rules

import (
	"github.com/shopspring/decimal"

	"housewolf/portal/internal/models"
)

// Rules holds the canonical bounds for every constrained listing field.
type Rules struct {
	TitleMinLen       int
	TitleMaxLen       int
	DescriptionMinLen int
	DescriptionMaxLen int

	// PriceScale is the maximum number of fractional digits a price may carry.
	// More fractional digits than this are rejected, never rounded.
	PriceScale int32
	PriceMax   decimal.Decimal

	Currencies   []models.Currency
	Conditions   []models.Condition
	Statuses     []models.Status
	Visibilities []models.Visibility

	// Transition tables: current state -> permitted next states. A state
	// absent from the map (or mapped to an empty set) is terminal.
	StatusTransitions     map[models.Status][]models.Status
	VisibilityTransitions map[models.Visibility][]models.Visibility
}

// Default returns the rule set the portal runs with.
func Default() *Rules {
	return &Rules{
		TitleMinLen:       3,
		TitleMaxLen:       140,
		DescriptionMinLen: 10,
		DescriptionMaxLen: 4000,

		PriceScale: 2,
		PriceMax:   decimal.New(100_000_000, 0),

		Currencies: []models.Currency{"aUEC", "USD", "EUR"},
		Conditions: []models.Condition{
			models.ConditionNew,
			models.ConditionUsed,
			models.ConditionWorn,
			models.ConditionSalvage,
		},
		Statuses: []models.Status{
			models.StatusDraft,
			models.StatusActive,
			models.StatusSold,
			models.StatusRemoved,
		},
		Visibilities: []models.Visibility{
			models.VisibilityPublic,
			models.VisibilityUnlisted,
			models.VisibilityPrivate,
		},

		StatusTransitions: map[models.Status][]models.Status{
			models.StatusDraft:   {models.StatusActive, models.StatusRemoved},
			models.StatusActive:  {models.StatusSold, models.StatusRemoved},
			models.StatusSold:    {models.StatusRemoved},
			models.StatusRemoved: {}, // terminal
		},
		VisibilityTransitions: map[models.Visibility][]models.Visibility{
			models.VisibilityPublic:   {models.VisibilityUnlisted, models.VisibilityPrivate},
			models.VisibilityUnlisted: {models.VisibilityPublic, models.VisibilityPrivate},
			models.VisibilityPrivate:  {models.VisibilityPublic, models.VisibilityUnlisted},
		},
	}
}

// IsCurrency reports whether c is a member of the supported currency set.
// Comparison is exact (case-sensitive).
func (r *Rules) IsCurrency(c models.Currency) bool {
	for _, v := range r.Currencies {
		if v == c {
			return true
		}
	}
	return false
}

// IsCondition reports whether c is a declared condition value.
func (r *Rules) IsCondition(c models.Condition) bool {
	for _, v := range r.Conditions {
		if v == c {
			return true
		}
	}
	return false
}

// IsStatus reports whether s is a declared status value.
func (r *Rules) IsStatus(s models.Status) bool {
	for _, v := range r.Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// IsVisibility reports whether v is a declared visibility value.
func (r *Rules) IsVisibility(vis models.Visibility) bool {
	for _, v := range r.Visibilities {
		if v == vis {
			return true
		}
	}
	return false
}

// CanTransitionStatus reports whether the status transition from -> to is permitted.
// A no-op transition (from == to) is not a transition and is always allowed.
func (r *Rules) CanTransitionStatus(from, to models.Status) bool {
	if from == to {
		return true
	}
	for _, next := range r.StatusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanTransitionVisibility reports whether the visibility change from -> to is permitted.
func (r *Rules) CanTransitionVisibility(from, to models.Visibility) bool {
	if from == to {
		return true
	}
	for _, next := range r.VisibilityTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CurrencyNames returns the supported currency set as plain strings, for
// error messages and UI choice rendering.
func (r *Rules) CurrencyNames() []string {
	out := make([]string, len(r.Currencies))
	for i, c := range r.Currencies {
		out[i] = string(c)
	}
	return out
}

// ConditionNames returns the declared condition values as plain strings.
func (r *Rules) ConditionNames() []string {
	out := make([]string, len(r.Conditions))
	for i, c := range r.Conditions {
		out[i] = string(c)
	}
	return out
}

// StatusNames returns the declared status values as plain strings.
func (r *Rules) StatusNames() []string {
	out := make([]string, len(r.Statuses))
	for i, s := range r.Statuses {
		out[i] = string(s)
	}
	return out
}

// VisibilityNames returns the declared visibility values as plain strings.
func (r *Rules) VisibilityNames() []string {
	out := make([]string, len(r.Visibilities))
	for i, v := range r.Visibilities {
		out[i] = string(v)
	}
	return out
}
