package validation

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"housewolf/portal/internal/models"
	"housewolf/portal/internal/rules"
)

func validCreatePayload() map[string]any {
	return map[string]any{
		"title":       "Anvil Arrow",
		"description": "Lightly flown light fighter, hangar kept.",
		"price":       "1250000.50",
		"currency":    "aUEC",
		"condition":   "used",
		"category_id": uuid.NewString(),
	}
}

func TestValidateCreate_Success(t *testing.T) {
	r := rules.Default()
	n, errs := ValidateCreate(r, validCreatePayload())
	require.Empty(t, errs)
	require.NotNil(t, n)

	assert.Equal(t, "Anvil Arrow", n.Title)
	assert.Equal(t, models.Currency("aUEC"), n.Currency)
	assert.Equal(t, models.ConditionUsed, n.Condition)
	assert.Equal(t, "1250000.5", n.Price.String())
	// Defaults applied and reported as part of the result.
	assert.Equal(t, models.StatusDraft, n.Status)
	assert.Equal(t, models.VisibilityPublic, n.Visibility)
	assert.True(t, n.Has("status"))
	assert.True(t, n.Has("visibility"))
}

func TestValidateCreate_Idempotent(t *testing.T) {
	r := rules.Default()
	n, errs := ValidateCreate(r, validCreatePayload())
	require.Empty(t, errs)

	// Re-validating the normalized output must succeed and change nothing.
	n2, errs2 := ValidateCreate(r, n.Payload())
	require.Empty(t, errs2)
	assert.Equal(t, n.Title, n2.Title)
	assert.Equal(t, n.Description, n2.Description)
	assert.True(t, n.Price.Equal(n2.Price))
	assert.Equal(t, n.Currency, n2.Currency)
	assert.Equal(t, n.Condition, n2.Condition)
	assert.Equal(t, n.Status, n2.Status)
	assert.Equal(t, n.Visibility, n2.Visibility)
	assert.Equal(t, n.CategoryID, n2.CategoryID)
}

func TestValidateCreate_MissingFields(t *testing.T) {
	r := rules.Default()
	payload := validCreatePayload()
	delete(payload, "price")
	delete(payload, "currency")

	_, errs := ValidateCreate(r, payload)
	require.Len(t, errs, 2)
	fields := []string{errs[0].Field, errs[1].Field}
	assert.Contains(t, fields, "price")
	assert.Contains(t, fields, "currency")
	for _, fe := range errs {
		assert.Equal(t, KindMissingField, fe.Kind)
	}
}

func TestValidateCreate_AllErrorsInOnePass(t *testing.T) {
	r := rules.Default()
	payload := map[string]any{
		"title":       "ab",                 // too short
		"description": "a serviceable hull", // valid
		"price":       "-5",                 // negative
		"currency":    "usd",                // wrong case
		"condition":   "mint",               // unknown enum
		"category_id": "not-a-uuid",         // malformed ref
	}
	_, errs := ValidateCreate(r, payload)
	require.Len(t, errs, 5)

	byField := map[string]Kind{}
	for _, fe := range errs {
		byField[fe.Field] = fe.Kind
	}
	assert.Equal(t, KindOutOfRange, byField["title"])
	assert.Equal(t, KindOutOfRange, byField["price"])
	assert.Equal(t, KindInvalidEnumValue, byField["currency"])
	assert.Equal(t, KindInvalidEnumValue, byField["condition"])
	assert.Equal(t, KindMalformedInput, byField["category_id"])
}

func TestValidateCreate_PriceScale(t *testing.T) {
	r := rules.Default()

	payload := validCreatePayload()
	payload["price"] = "12.345"
	_, errs := ValidateCreate(r, payload)
	require.Len(t, errs, 1)
	assert.Equal(t, "price", errs[0].Field)
	assert.Equal(t, KindOutOfRange, errs[0].Kind)

	// Trailing zeros beyond the scale carry no extra precision.
	payload["price"] = "12.300"
	n, errs := ValidateCreate(r, payload)
	require.Empty(t, errs)
	assert.True(t, n.Price.Equal(decimalFromString(t, "12.3")))

	// json.Number input preserves the literal's exact scale.
	payload["price"] = json.Number("12.345")
	_, errs = ValidateCreate(r, payload)
	require.Len(t, errs, 1)
	assert.Equal(t, KindOutOfRange, errs[0].Kind)
}

func TestValidateCreate_PriceBounds(t *testing.T) {
	r := rules.Default()

	payload := validCreatePayload()
	payload["price"] = "100000000.01"
	_, errs := ValidateCreate(r, payload)
	require.Len(t, errs, 1)
	assert.Equal(t, KindOutOfRange, errs[0].Kind)

	payload["price"] = "0"
	_, errs = ValidateCreate(r, payload)
	assert.Empty(t, errs, "zero is a legal price")

	payload["price"] = []string{"12"}
	_, errs = ValidateCreate(r, payload)
	require.Len(t, errs, 1)
	assert.Equal(t, KindMalformedInput, errs[0].Kind)
}

func TestValidateCreate_CurrencyTrimmingAndCase(t *testing.T) {
	r := rules.Default()

	// Trailing whitespace is trimmed before the enum check.
	payload := validCreatePayload()
	payload["currency"] = "USD "
	n, errs := ValidateCreate(r, payload)
	require.Empty(t, errs)
	assert.Equal(t, models.Currency("USD"), n.Currency)

	// Wrong case is not coerced.
	payload["currency"] = "usd"
	_, errs = ValidateCreate(r, payload)
	require.Len(t, errs, 1)
	assert.Equal(t, "currency", errs[0].Field)
	assert.Equal(t, KindInvalidEnumValue, errs[0].Kind)
	assert.Contains(t, errs[0].Message, "aUEC, USD, EUR")
}

func TestValidateCreate_MarkupRejected(t *testing.T) {
	r := rules.Default()
	payload := validCreatePayload()
	payload["title"] = "Great ship <script>alert(1)</script>"

	_, errs := ValidateCreate(r, payload)
	require.Len(t, errs, 1)
	assert.Equal(t, "title", errs[0].Field)
	assert.Equal(t, KindMalformedInput, errs[0].Kind)
}

func TestValidateCreate_TitleTrimmedBeforeLengthCheck(t *testing.T) {
	r := rules.Default()
	payload := validCreatePayload()
	payload["title"] = "   ab   " // trims to 2 chars, below minimum

	_, errs := ValidateCreate(r, payload)
	require.Len(t, errs, 1)
	assert.Equal(t, KindOutOfRange, errs[0].Kind)
}

func TestValidateCreate_UnknownField(t *testing.T) {
	r := rules.Default()
	payload := validCreatePayload()
	payload["owner_id"] = "someone-else"

	_, errs := ValidateCreate(r, payload)
	require.Len(t, errs, 1)
	assert.Equal(t, "owner_id", errs[0].Field)
	assert.Equal(t, KindMalformedInput, errs[0].Kind)
}

func TestValidateUpdate_PartialFields(t *testing.T) {
	r := rules.Default()
	current := &models.Listing{Status: models.StatusActive, Visibility: models.VisibilityPublic}

	n, errs := ValidateUpdate(r, current, map[string]any{"title": "  New Title  "})
	require.Empty(t, errs)
	assert.Equal(t, "New Title", n.Title)
	assert.Equal(t, []string{"title"}, n.Fields)
	assert.False(t, n.Has("price"))
}

func TestValidateUpdate_StatusTransitions(t *testing.T) {
	r := rules.Default()

	active := &models.Listing{Status: models.StatusActive, Visibility: models.VisibilityPublic}
	n, errs := ValidateUpdate(r, active, map[string]any{"status": "sold"})
	require.Empty(t, errs)
	assert.Equal(t, models.StatusSold, n.Status)

	sold := &models.Listing{Status: models.StatusSold, Visibility: models.VisibilityPublic}
	_, errs = ValidateUpdate(r, sold, map[string]any{"status": "active"})
	require.Len(t, errs, 1)
	assert.Equal(t, "status", errs[0].Field)
	assert.Equal(t, KindInvalidTransition, errs[0].Kind)

	removed := &models.Listing{Status: models.StatusRemoved, Visibility: models.VisibilityPublic}
	_, errs = ValidateUpdate(r, removed, map[string]any{"status": "draft"})
	require.Len(t, errs, 1)
	assert.Equal(t, KindInvalidTransition, errs[0].Kind)
}

func TestValidateUpdate_UnknownStatusIsEnumErrorNotTransition(t *testing.T) {
	r := rules.Default()
	current := &models.Listing{Status: models.StatusActive, Visibility: models.VisibilityPublic}

	_, errs := ValidateUpdate(r, current, map[string]any{"status": "archived"})
	require.Len(t, errs, 1)
	assert.Equal(t, KindInvalidEnumValue, errs[0].Kind)
}

func TestValidateUpdate_EmptyPayload(t *testing.T) {
	r := rules.Default()
	current := &models.Listing{Status: models.StatusActive}

	_, errs := ValidateUpdate(r, current, map[string]any{})
	require.Len(t, errs, 1)
	assert.Equal(t, KindMalformedInput, errs[0].Kind)
}

func TestErrors_ErrorString(t *testing.T) {
	errs := Errors{
		{Field: "title", Kind: KindOutOfRange, Message: "too short"},
		{Field: "price", Kind: KindOutOfRange, Message: "negative"},
	}
	assert.Contains(t, errs.Error(), "title: too short")
	assert.Contains(t, errs.Error(), "price: negative")
}

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}
