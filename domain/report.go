package domain

// ExpiringMedicine is a row of the near-expiry report.
type ExpiringMedicine struct {
	Medicine
	DaysLeft int `json:"days_left"`
}

// Expired reports whether the expiry date is already in the past.
func (e ExpiringMedicine) Expired() bool {
	return e.DaysLeft < 0
}
