package inventory

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMedicine(t *testing.T) {
	m, err := NewMedicine(NewMedicineInput{
		Name:    " Amoxicillin 250mg ",
		Company: " Cipla ",
		Price:   "4.20",
		Qty:     "15",
		Expiry:  "2027-08-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "Amoxicillin 250mg", m.Name)
	assert.Equal(t, "Cipla", m.CompanyName())
	assert.Equal(t, "4.20", m.Price.StringFixed(2))
	assert.EqualValues(t, 15, m.Quantity)
	assert.Equal(t, "2027-08-01", m.ExpiryString())
}

func TestNewMedicineBlankOptionals(t *testing.T) {
	m, err := NewMedicine(NewMedicineInput{Name: "Saline", Price: "0", Qty: "0"})
	require.NoError(t, err)
	assert.Nil(t, m.Company)
	assert.Nil(t, m.ExpiryDate)
}

func TestNewMedicineRejectsBadNumbersFirst(t *testing.T) {
	_, err := NewMedicine(NewMedicineInput{Name: "", Price: "abc", Qty: "1"})
	requireValidation(t, err)
	assert.Contains(t, err.Error(), "price")

	_, err = NewMedicine(NewMedicineInput{Name: "X", Price: "1", Qty: "1.5"})
	requireValidation(t, err)
	assert.Contains(t, err.Error(), "quantity")

	_, err = NewMedicine(NewMedicineInput{Name: "X", Price: "1", Qty: "1", Expiry: "soon"})
	requireValidation(t, err)
}

func TestNewMedicineStructRules(t *testing.T) {
	_, err := NewMedicine(NewMedicineInput{Name: "  ", Price: "1", Qty: "1"})
	requireValidation(t, err)
	assert.Contains(t, err.Error(), "name is required")

	_, err = NewMedicine(NewMedicineInput{Name: strings.Repeat("x", 256), Price: "1", Qty: "1"})
	requireValidation(t, err)
	assert.Contains(t, err.Error(), "name must be at most 255 characters")
}
