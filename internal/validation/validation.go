// Package validation checks listing create/update payloads against the
// rules registry. It performs no I/O: category existence and persistence are
// the caller's concern, which keeps this layer pure and testable with
// injected rule sets.
package validation

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"housewolf/portal/internal/models"
	"housewolf/portal/internal/rules"
)

// Kind is the machine-readable class of a validation error.
type Kind string

const (
	KindMissingField      Kind = "missing_field"
	KindOutOfRange        Kind = "out_of_range"
	KindInvalidEnumValue  Kind = "invalid_enum_value"
	KindInvalidTransition Kind = "invalid_transition"
	KindMalformedInput    Kind = "malformed_input"
)

// FieldError is a single field-scoped validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Errors is the complete, ordered set of failures found in one pass.
// Expected invalid input never panics or aborts early: the caller gets every
// problem at once and can fix them in a single round trip.
type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Normalized is a validated payload with every field in canonical form:
// strings trimmed, price as a fixed-scale decimal, enums as canonical
// members. Re-validating a Normalized value's payload always succeeds.
type Normalized struct {
	Title       string
	Description string
	Price       decimal.Decimal
	Currency    models.Currency
	Condition   models.Condition
	Status      models.Status
	Visibility  models.Visibility
	CategoryID  string

	// Fields lists which payload fields were actually validated, so the
	// caller knows what to merge into the persisted record on update.
	Fields []string
}

// Has reports whether the named payload field was present and validated.
func (n *Normalized) Has(field string) bool {
	for _, f := range n.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// Payload renders the normalized value back into payload form. Mostly useful
// in tests for checking idempotence.
func (n *Normalized) Payload() map[string]any {
	p := make(map[string]any, len(n.Fields))
	for _, f := range n.Fields {
		switch f {
		case "title":
			p[f] = n.Title
		case "description":
			p[f] = n.Description
		case "price":
			p[f] = n.Price.String()
		case "currency":
			p[f] = string(n.Currency)
		case "condition":
			p[f] = string(n.Condition)
		case "status":
			p[f] = string(n.Status)
		case "visibility":
			p[f] = string(n.Visibility)
		case "category_id":
			p[f] = n.CategoryID
		}
	}
	return p
}

// knownFields is the canonical processing order. Errors come back in this
// order so the result is deterministic regardless of map iteration.
var knownFields = []string{
	"title", "description", "price", "currency",
	"condition", "status", "visibility", "category_id",
}

var createRequired = []string{
	"title", "description", "price", "currency", "condition", "category_id",
}

// ValidateCreate validates a full creation payload. All required fields must
// be present; status defaults to draft and visibility to public when omitted.
// Returns the normalized listing shape, or the complete error set.
func ValidateCreate(r *rules.Rules, payload map[string]any) (*Normalized, Errors) {
	var errs Errors

	for _, f := range createRequired {
		if _, ok := payload[f]; !ok {
			errs = append(errs, FieldError{f, KindMissingField, "required field is missing"})
		}
	}
	errs = append(errs, unknownFieldErrors(payload)...)

	n := &Normalized{
		Status:     models.StatusDraft,
		Visibility: models.VisibilityPublic,
	}
	errs = append(errs, validateFields(r, payload, n)...)

	if len(errs) > 0 {
		return nil, errs
	}
	// Defaults count as validated fields: the creation result is a complete
	// listing shape.
	if !n.Has("status") {
		n.Fields = append(n.Fields, "status")
	}
	if !n.Has("visibility") {
		n.Fields = append(n.Fields, "visibility")
	}
	return n, nil
}

// ValidateUpdate validates a partial update payload against the listing's
// current state. Only supplied fields are validated; merging the result into
// the persisted record is the caller's job. Status and visibility changes are
// checked against the transition tables.
func ValidateUpdate(r *rules.Rules, current *models.Listing, payload map[string]any) (*Normalized, Errors) {
	var errs Errors

	if len(payload) == 0 {
		return nil, Errors{{Field: "", Kind: KindMalformedInput, Message: "update payload is empty"}}
	}
	errs = append(errs, unknownFieldErrors(payload)...)

	n := &Normalized{}
	errs = append(errs, validateFields(r, payload, n)...)

	// Transition checks only make sense once the target value itself parsed.
	if n.Has("status") && !r.CanTransitionStatus(current.Status, n.Status) {
		errs = append(errs, FieldError{
			Field: "status",
			Kind:  KindInvalidTransition,
			Message: fmt.Sprintf("status cannot change from %q to %q",
				current.Status, n.Status),
		})
	}
	if n.Has("visibility") && !r.CanTransitionVisibility(current.Visibility, n.Visibility) {
		errs = append(errs, FieldError{
			Field: "visibility",
			Kind:  KindInvalidTransition,
			Message: fmt.Sprintf("visibility cannot change from %q to %q",
				current.Visibility, n.Visibility),
		})
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return n, nil
}

// validateFields checks every known field present in the payload and fills n.
// Unknown and missing fields are handled by the callers.
func validateFields(r *rules.Rules, payload map[string]any, n *Normalized) Errors {
	var errs Errors

	addErr := func(fe *FieldError) bool {
		if fe != nil {
			errs = append(errs, *fe)
			return true
		}
		return false
	}

	for _, field := range knownFields {
		raw, ok := payload[field]
		if !ok {
			continue
		}

		switch field {
		case "title":
			s, fe := textField(field, raw, r.TitleMinLen, r.TitleMaxLen)
			if !addErr(fe) {
				n.Title = s
				n.Fields = append(n.Fields, field)
			}
		case "description":
			s, fe := textField(field, raw, r.DescriptionMinLen, r.DescriptionMaxLen)
			if !addErr(fe) {
				n.Description = s
				n.Fields = append(n.Fields, field)
			}
		case "price":
			d, fe := priceField(field, raw, r)
			if !addErr(fe) {
				n.Price = d
				n.Fields = append(n.Fields, field)
			}
		case "currency":
			s, fe := enumField(field, raw, r.CurrencyNames())
			if !addErr(fe) {
				n.Currency = models.Currency(s)
				n.Fields = append(n.Fields, field)
			}
		case "condition":
			s, fe := enumField(field, raw, r.ConditionNames())
			if !addErr(fe) {
				n.Condition = models.Condition(s)
				n.Fields = append(n.Fields, field)
			}
		case "status":
			s, fe := enumField(field, raw, r.StatusNames())
			if !addErr(fe) {
				n.Status = models.Status(s)
				n.Fields = append(n.Fields, field)
			}
		case "visibility":
			s, fe := enumField(field, raw, r.VisibilityNames())
			if !addErr(fe) {
				n.Visibility = models.Visibility(s)
				n.Fields = append(n.Fields, field)
			}
		case "category_id":
			s, fe := identifierField(field, raw)
			if !addErr(fe) {
				n.CategoryID = s
				n.Fields = append(n.Fields, field)
			}
		}
	}

	return errs
}

func unknownFieldErrors(payload map[string]any) Errors {
	var unknown []string
	for key := range payload {
		known := false
		for _, f := range knownFields {
			if key == f {
				known = true
				break
			}
		}
		if !known {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)

	var errs Errors
	for _, key := range unknown {
		errs = append(errs, FieldError{key, KindMalformedInput, "unknown field"})
	}
	return errs
}

// textField trims and length-checks a free-text field. Markup characters are
// rejected outright rather than escaped.
func textField(field string, raw any, minLen, maxLen int) (string, *FieldError) {
	s, ok := raw.(string)
	if !ok {
		return "", &FieldError{field, KindMalformedInput, "must be a string"}
	}
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, "<>") {
		return "", &FieldError{field, KindMalformedInput, "markup characters are not allowed"}
	}
	if len(s) < minLen || len(s) > maxLen {
		return "", &FieldError{field, KindOutOfRange,
			fmt.Sprintf("length must be between %d and %d characters", minLen, maxLen)}
	}
	return s, nil
}

// priceField parses a price into a non-negative decimal within the declared
// scale. A value with more fractional digits than the scale allows is
// rejected, never rounded.
func priceField(field string, raw any, r *rules.Rules) (decimal.Decimal, *FieldError) {
	var (
		d   decimal.Decimal
		err error
	)
	switch v := raw.(type) {
	case string:
		d, err = decimal.NewFromString(strings.TrimSpace(v))
	case json.Number:
		d, err = decimal.NewFromString(v.String())
	case float64:
		d = decimal.NewFromFloat(v)
	case int:
		d = decimal.New(int64(v), 0)
	case int64:
		d = decimal.New(v, 0)
	default:
		return decimal.Decimal{}, &FieldError{field, KindMalformedInput, "must be a number or numeric string"}
	}
	if err != nil {
		return decimal.Decimal{}, &FieldError{field, KindMalformedInput, "must be a number or numeric string"}
	}

	if d.IsNegative() {
		return decimal.Decimal{}, &FieldError{field, KindOutOfRange, "must not be negative"}
	}
	if !d.Equal(d.Truncate(r.PriceScale)) {
		return decimal.Decimal{}, &FieldError{field, KindOutOfRange,
			fmt.Sprintf("must not have more than %d decimal places", r.PriceScale)}
	}
	if d.GreaterThan(r.PriceMax) {
		return decimal.Decimal{}, &FieldError{field, KindOutOfRange,
			fmt.Sprintf("must not exceed %s", r.PriceMax.String())}
	}
	return d, nil
}

// enumField trims the value and requires exact (case-sensitive) membership.
func enumField(field string, raw any, allowed []string) (string, *FieldError) {
	s, ok := raw.(string)
	if !ok {
		return "", &FieldError{field, KindMalformedInput, "must be a string"}
	}
	s = strings.TrimSpace(s)
	for _, a := range allowed {
		if s == a {
			return s, nil
		}
	}
	return "", &FieldError{field, KindInvalidEnumValue,
		fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", "))}
}

// identifierField checks referential shape only; whether the category exists
// and is active is checked by the caller against the catalog.
func identifierField(field string, raw any) (string, *FieldError) {
	s, ok := raw.(string)
	if !ok {
		return "", &FieldError{field, KindMalformedInput, "must be a string"}
	}
	s = strings.TrimSpace(s)
	if _, err := uuid.Parse(s); err != nil {
		return "", &FieldError{field, KindMalformedInput, "must be a well-formed identifier"}
	}
	return s, nil
}
