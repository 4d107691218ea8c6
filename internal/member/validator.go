package member

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/changhyeonkim/gym-member-api/internal/model"
	sharedValidator "github.com/changhyeonkim/gym-member-api/internal/shared/validator"
	"github.com/go-playground/validator/v10"
)

// Payload is a member request body keyed by JSON field name. Keeping the raw values
// lets presence be checked by key, independent of the value.
type Payload map[string]json.RawMessage

// Field names in canonical order.
const (
	fieldMID            = "mId"
	fieldName           = "name"
	fieldMobile         = "mobile"
	fieldTrainingType   = "trainingType"
	fieldAddress        = "address"
	fieldIDProof        = "idProof"
	fieldBatch          = "batch"
	fieldPlanType       = "planType"
	fieldPurchaseDate   = "purchaseDate"
	fieldExpiryDate     = "expiryDate"
	fieldTotalAmount    = "totalAmount"
	fieldAmountPaid     = "amountPaid"
	fieldDueAmount      = "dueAmount"
	fieldPaymentDetails = "paymentDetails"
)

// RequiredFields lists every field a create or replace must carry.
var RequiredFields = []string{
	fieldMID, fieldName, fieldMobile, fieldTrainingType, fieldAddress, fieldIDProof, fieldBatch,
	fieldPlanType, fieldPurchaseDate, fieldExpiryDate, fieldTotalAmount, fieldAmountPaid,
	fieldDueAmount, fieldPaymentDetails,
}

var (
	numericFields = []string{fieldTotalAmount, fieldAmountPaid, fieldDueAmount}
	dateFields    = []string{fieldPurchaseDate, fieldExpiryDate}
)

// Amounts holds the coerced numeric fields.
type Amounts struct {
	TotalAmount float64
	AmountPaid  float64
	DueAmount   float64
}

// Validator enforces the member record contract before any store mutation.
// It has no side effects.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: sharedValidator.New()}
}

// Validate runs the required-field, numeric and date stages in that order and stops at
// the first failing stage. On success it returns a record without an id.
func (v *Validator) Validate(p Payload) (*model.Member, error) {
	if err := v.ValidateRequired(p); err != nil {
		return nil, err
	}

	amounts, err := v.CoerceNumeric(p)
	if err != nil {
		return nil, err
	}

	if err := v.ValidateDates(p); err != nil {
		return nil, err
	}

	text, err := decodeText(p)
	if err != nil {
		return nil, err
	}

	return &model.Member{
		MID:            text[fieldMID],
		Name:           text[fieldName],
		Mobile:         text[fieldMobile],
		TrainingType:   text[fieldTrainingType],
		Address:        text[fieldAddress],
		IDProof:        text[fieldIDProof],
		Batch:          text[fieldBatch],
		PlanType:       text[fieldPlanType],
		PurchaseDate:   text[fieldPurchaseDate],
		ExpiryDate:     text[fieldExpiryDate],
		TotalAmount:    amounts.TotalAmount,
		AmountPaid:     amounts.AmountPaid,
		DueAmount:      amounts.DueAmount,
		PaymentDetails: text[fieldPaymentDetails],
	}, nil
}

// ValidateRequired reports every absent key. An empty string counts as present.
func (v *Validator) ValidateRequired(p Payload) error {
	var missing []string
	for _, field := range RequiredFields {
		if _, ok := p[field]; !ok {
			missing = append(missing, field)
		}
	}

	if len(missing) > 0 {
		return missingFieldsError(missing)
	}
	return nil
}

// CoerceNumeric converts the amount fields to float64, failing on the first field
// that is not a finite number or numeric string.
func (v *Validator) CoerceNumeric(p Payload) (Amounts, error) {
	values := make(map[string]float64, len(numericFields))
	for _, field := range numericFields {
		raw := p[field]
		f, ok := coerceFloat(raw)
		if !ok {
			return Amounts{}, &ValidationError{
				Kind:   ErrInvalidNumeric,
				Fields: []string{field},
				Detail: fmt.Sprintf("Invalid numeric values: %s=%s could not be converted to a number", field, rawText(raw)),
			}
		}
		values[field] = f
	}

	return Amounts{
		TotalAmount: values[fieldTotalAmount],
		AmountPaid:  values[fieldAmountPaid],
		DueAmount:   values[fieldDueAmount],
	}, nil
}

// ValidateDates checks purchaseDate then expiryDate against YYYY-MM-DD.
// The two dates are not compared with each other.
func (v *Validator) ValidateDates(p Payload) error {
	for _, field := range dateFields {
		raw := p[field]
		value, ok := decodeString(raw)
		if !ok || v.validate.Var(value, sharedValidator.CalendarDateTag) != nil {
			return &ValidationError{
				Kind:   ErrInvalidDate,
				Fields: []string{field},
				Detail: fmt.Sprintf("Invalid date format. Use YYYY-MM-DD: %s=%s", field, rawText(raw)),
			}
		}
	}
	return nil
}

func decodeText(p Payload) (map[string]string, error) {
	text := make(map[string]string, len(RequiredFields))
	var invalid []string
	for _, field := range RequiredFields {
		if isNumericField(field) {
			continue
		}
		value, ok := decodeString(p[field])
		if !ok {
			invalid = append(invalid, field)
			continue
		}
		text[field] = value
	}

	if len(invalid) > 0 {
		return nil, &ValidationError{
			Kind:   ErrInvalidPayload,
			Fields: invalid,
			Detail: fmt.Sprintf("Fields must be strings: [%s]", strings.Join(invalid, ", ")),
		}
	}
	return text, nil
}

func isNumericField(field string) bool {
	for _, f := range numericFields {
		if f == field {
			return true
		}
	}
	return false
}

// decodeString accepts only JSON strings; null and other types are rejected.
func decodeString(raw json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return "", false
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return "", false
	}
	return s, true
}

// coerceFloat accepts JSON numbers and numeric strings such as "1000", " 12.5 " or "1e3".
func coerceFloat(raw json.RawMessage) (float64, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0, false
	}

	var f float64
	switch trimmed[0] {
	case '"':
		s, ok := decodeString(trimmed)
		if !ok {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		if err := json.Unmarshal(trimmed, &f); err != nil {
			return 0, false
		}
	default:
		// null, true/false, objects, arrays
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func rawText(raw json.RawMessage) string {
	const maxLen = 64
	s := string(bytes.TrimSpace(raw))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}
