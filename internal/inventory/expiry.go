package inventory

import "medshop/m/domain"

// DefaultExpiryWindowDays is the near-expiry window used when none is configured.
const DefaultExpiryWindowDays = 30

// ExpiringWithin keeps the records whose expiry date is at most days after
// today. Already expired records are kept with a negative day count; records
// without an expiry date are dropped.
func ExpiringWithin(records []domain.Medicine, today domain.Date, days int) []domain.ExpiringMedicine {
	var near []domain.ExpiringMedicine
	for _, m := range records {
		if m.ExpiryDate == nil {
			continue
		}
		delta := today.DaysUntil(*m.ExpiryDate)
		if delta <= days {
			near = append(near, domain.ExpiringMedicine{Medicine: m, DaysLeft: delta})
		}
	}
	return near
}
