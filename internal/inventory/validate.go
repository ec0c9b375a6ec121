package inventory

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"medshop/m/domain"
	"medshop/m/internal/apperr"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	// Compare decimals numerically for gte/lte tags.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// NewMedicineInput is the raw operator input for the add operation.
type NewMedicineInput struct {
	Name    string
	Company string
	Price   string
	Qty     string
	Expiry  string
}

type medicineFields struct {
	Name     string          `json:"name" validate:"required,max=255"`
	Company  string          `json:"company" validate:"max=255"`
	Price    decimal.Decimal `json:"price" validate:"gte=0"`
	Quantity int64           `json:"quantity" validate:"gte=0"`
}

// NewMedicine parses and validates add input. Numeric fields are checked
// first so a bad price or quantity is reported before anything else.
func NewMedicine(in NewMedicineInput) (domain.Medicine, error) {
	price, err := ParsePrice(in.Price)
	if err != nil {
		return domain.Medicine{}, err
	}
	qty, err := ParseQuantity(in.Qty)
	if err != nil {
		return domain.Medicine{}, err
	}
	expiry, err := ParseExpiry(in.Expiry)
	if err != nil {
		return domain.Medicine{}, err
	}

	fields := medicineFields{
		Name:     strings.TrimSpace(in.Name),
		Company:  strings.TrimSpace(in.Company),
		Price:    price,
		Quantity: qty,
	}
	if err := validate.Struct(fields); err != nil {
		return domain.Medicine{}, formatValidationErrors(err)
	}

	m := domain.Medicine{
		Name:       fields.Name,
		Price:      fields.Price,
		Quantity:   fields.Quantity,
		ExpiryDate: expiry,
	}
	if fields.Company != "" {
		m.Company = &fields.Company
	}
	return m, nil
}

func formatValidationErrors(err error) *apperr.Error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return apperr.Wrap(apperr.CodeValidation, err, "validation failed")
	}
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		msgs = append(msgs, fmt.Sprintf("%s %s", fe.Field(), validationMessage(fe)))
	}
	return apperr.Validation(strings.Join(msgs, "; "))
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return "is invalid"
	}
}
