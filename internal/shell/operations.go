package shell

import (
	"context"
	"fmt"
	"strings"

	"medshop/m/domain"
	"medshop/m/internal/apperr"
	"medshop/m/internal/inventory"
	"medshop/m/internal/store"
)

const (
	tableHeader = "%-5s %-25s %-18s %-10s %-8s %-12s\n"
	tableRow    = "%-5d %-25s %-18s %-10s %-8d %-12s\n"
)

func (s *Shell) add(ctx context.Context) error {
	var in inventory.NewMedicineInput
	var err error
	if in.Name, err = s.io.Prompt("Enter medicine name: "); err != nil {
		return err
	}
	if in.Company, err = s.io.Prompt("Enter company name: "); err != nil {
		return err
	}
	if in.Price, err = s.io.Prompt("Enter price: "); err != nil {
		return err
	}
	if _, err := inventory.ParsePrice(in.Price); err != nil {
		return err
	}
	if in.Qty, err = s.io.Prompt("Enter quantity: "); err != nil {
		return err
	}
	if _, err := inventory.ParseQuantity(in.Qty); err != nil {
		return err
	}
	if in.Expiry, err = s.io.Prompt("Enter expiry date (YYYY-MM-DD, blank if none): "); err != nil {
		return err
	}

	m, err := inventory.NewMedicine(in)
	if err != nil {
		return err
	}
	id, err := s.records.Add(ctx, m)
	if err != nil {
		return err
	}
	s.logg.Info(s.logg.WithField(ctx, "id", id), "medicine added")
	s.io.Printf("Medicine added successfully! (ID %d)\n", id)
	return nil
}

func (s *Shell) list(ctx context.Context) error {
	records, err := s.records.List(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		s.io.Println()
		s.io.Println("No medicines found.")
		return nil
	}
	s.io.Println()
	s.io.Println("--- Medicine Inventory ---")
	s.io.Printf(tableHeader, "ID", "Name", "Company", "Price", "Qty", "Expiry")
	for _, m := range records {
		s.io.Printf(tableRow, m.ID, m.Name, m.CompanyName(), m.Price.StringFixed(2), m.Quantity, m.ExpiryString())
	}
	return nil
}

func (s *Shell) search(ctx context.Context) error {
	name, err := s.io.Prompt("Enter medicine name to search: ")
	if err != nil {
		return err
	}
	records, err := s.records.Search(ctx, name)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		s.io.Println("No medicine found with that name.")
		return nil
	}
	s.io.Println()
	s.io.Println("Search Results:")
	for _, m := range records {
		s.io.Printf("ID: %d | Name: %s | Company: %s | Price: %s | Qty: %d | Expiry: %s\n",
			m.ID, m.Name, m.CompanyName(), m.Price.StringFixed(2), m.Quantity, m.ExpiryString())
	}
	return nil
}

var newValuePrompts = map[store.Field]string{
	store.FieldName:     "Enter new name: ",
	store.FieldPrice:    "Enter new price: ",
	store.FieldQuantity: "Enter new quantity: ",
	store.FieldExpiry:   "Enter new expiry date (YYYY-MM-DD, blank to clear): ",
}

func (s *Shell) update(ctx context.Context) error {
	raw, err := s.io.Prompt("Enter medicine ID to update: ")
	if err != nil {
		return err
	}
	id, err := inventory.ParseID(raw)
	if err != nil {
		return err
	}

	s.io.Println("1. Update Name")
	s.io.Println("2. Update Price")
	s.io.Println("3. Update Quantity")
	s.io.Println("4. Update Expiry Date")
	raw, err = s.io.Prompt("Choose an option: ")
	if err != nil {
		return err
	}
	field, err := inventory.ParseField(raw)
	if err != nil {
		return err
	}

	raw, err = s.io.Prompt(newValuePrompts[field])
	if err != nil {
		return err
	}
	value, err := inventory.ParseFieldValue(field, raw)
	if err != nil {
		return err
	}

	n, err := s.records.UpdateField(ctx, id, field, value)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.Newf(apperr.CodeNotFound, "No medicine with ID %d.", id)
	}
	s.logg.Info(s.logg.WithField(ctx, "id", id), "medicine updated")
	s.io.Println("Medicine updated successfully!")
	return nil
}

func (s *Shell) delete(ctx context.Context) error {
	raw, err := s.io.Prompt("Enter medicine ID to delete: ")
	if err != nil {
		return err
	}
	id, err := inventory.ParseID(raw)
	if err != nil {
		return err
	}
	m, err := s.records.Get(ctx, id)
	if err != nil {
		if apperr.IsCode(err, apperr.CodeNotFound) {
			return apperr.Newf(apperr.CodeNotFound, "No medicine with ID %d.", id)
		}
		return err
	}

	answer, err := s.io.Prompt(fmt.Sprintf("Are you sure you want to delete medicine ID %d (%s)? (y/n): ", id, m.Name))
	if err != nil {
		return err
	}
	if strings.ToLower(answer) != "y" {
		s.io.Println("Cancelled.")
		return nil
	}

	n, err := s.records.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.Newf(apperr.CodeNotFound, "No medicine with ID %d.", id)
	}
	s.logg.Info(s.logg.WithField(ctx, "id", id), "medicine deleted")
	s.io.Println("Medicine deleted successfully!")
	return nil
}

func (s *Shell) lowStock(ctx context.Context) error {
	raw, err := s.io.Prompt("Enter stock threshold: ")
	if err != nil {
		return err
	}
	threshold, err := inventory.ParseThreshold(raw)
	if err != nil {
		return err
	}
	records, err := s.records.LowStock(ctx, threshold)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		s.io.Println("All medicines are sufficiently stocked.")
		return nil
	}
	s.io.Println()
	s.io.Println("Low Stock Medicines:")
	for _, m := range records {
		s.io.Printf("ID %d | %s - Qty: %d\n", m.ID, m.Name, m.Quantity)
	}
	return nil
}

func (s *Shell) expiry(ctx context.Context) error {
	records, err := s.records.WithExpiry(ctx)
	if err != nil {
		return err
	}
	today := domain.NewDate(s.now())
	near := inventory.ExpiringWithin(records, today, s.expiryDays)
	if len(near) == 0 {
		s.io.Printf("No medicines expiring within %d days.\n", s.expiryDays)
		return nil
	}
	s.io.Println()
	s.io.Printf("Medicines expiring within %d days:\n", s.expiryDays)
	for _, e := range near {
		s.io.Printf("ID %d | %s | Expiry: %s | %s\n", e.ID, e.Name, e.ExpiryString(), daysLabel(e.DaysLeft))
	}
	return nil
}

func daysLabel(days int) string {
	switch {
	case days < -1:
		return fmt.Sprintf("expired %d days ago", -days)
	case days == -1:
		return "expired 1 day ago"
	case days == 0:
		return "expires today"
	case days == 1:
		return "in 1 day"
	default:
		return fmt.Sprintf("in %d days", days)
	}
}
