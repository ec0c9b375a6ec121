package domain

import "github.com/shopspring/decimal"

// Medicine is one inventory entry in the medicines table.
type Medicine struct {
	ID         int64           `db:"id" json:"id"`
	Name       string          `db:"name" json:"name"`
	Company    *string         `db:"company" json:"company,omitempty"`
	Price      decimal.Decimal `db:"price" json:"price"`
	Quantity   int64           `db:"quantity" json:"quantity"`
	ExpiryDate *Date           `db:"expiry_date" json:"expiry_date,omitempty"`
}

// CompanyName returns the company or an empty string when it is unset.
func (m Medicine) CompanyName() string {
	if m.Company == nil {
		return ""
	}
	return *m.Company
}

// ExpiryString formats the expiry date, or "" when there is none.
func (m Medicine) ExpiryString() string {
	if m.ExpiryDate == nil {
		return ""
	}
	return m.ExpiryDate.String()
}
