package inventory

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"medshop/m/domain"
	"medshop/m/internal/apperr"
	"medshop/m/internal/store"
)

// ParsePrice reads a non-negative decimal price.
func ParsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, apperr.Validation("Invalid number entered for price.")
	}
	if price.IsNegative() {
		return decimal.Decimal{}, apperr.Validation("Price cannot be negative.")
	}
	return price, nil
}

// ParseQuantity reads a non-negative whole quantity.
func ParseQuantity(raw string) (int64, error) {
	qty, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, apperr.Validation("Invalid number entered for quantity.")
	}
	if qty < 0 {
		return 0, apperr.Validation("Quantity cannot be negative.")
	}
	return qty, nil
}

// ParseThreshold reads the low-stock cutoff.
func ParseThreshold(raw string) (int64, error) {
	threshold, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, apperr.Validation("Invalid threshold.")
	}
	return threshold, nil
}

// ParseID reads a record id; only positive integers are ids.
func ParseID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	// Reject signs so "+3" is treated like any other non-digit input.
	if raw == "" || strings.IndexFunc(raw, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return 0, apperr.Validation("Invalid ID.")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("Invalid ID.")
	}
	return id, nil
}

// ParseExpiry reads an optional YYYY-MM-DD date; blank means none.
func ParseExpiry(raw string) (*domain.Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	d, err := domain.ParseDate(raw)
	if err != nil {
		return nil, apperr.Validation("Invalid date, expected YYYY-MM-DD.")
	}
	return &d, nil
}

// ParseField accepts the update sub-menu number or the field name.
func ParseField(raw string) (store.Field, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "name":
		return store.FieldName, nil
	case "2", "price":
		return store.FieldPrice, nil
	case "3", "quantity", "qty":
		return store.FieldQuantity, nil
	case "4", "expiry", "expiry_date":
		return store.FieldExpiry, nil
	default:
		return "", apperr.Validation("Invalid choice.")
	}
}

// ParseFieldValue converts raw input into the value stored for field.
func ParseFieldValue(field store.Field, raw string) (any, error) {
	switch field {
	case store.FieldName:
		name := strings.TrimSpace(raw)
		if name == "" {
			return nil, apperr.Validation("Name cannot be empty.")
		}
		return name, nil
	case store.FieldPrice:
		return ParsePrice(raw)
	case store.FieldQuantity:
		return ParseQuantity(raw)
	case store.FieldExpiry:
		return ParseExpiry(raw)
	default:
		return nil, apperr.Newf(apperr.CodeValidation, "unknown field %q", field)
	}
}
