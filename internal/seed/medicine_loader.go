package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"

	"medshop/m/internal/inventory"
	"medshop/m/internal/logger"
)

// Columns expected in the seed CSV header, in order.
var Columns = []string{"name", "company", "price", "quantity", "expiry_date"}

// LoadMedicines imports the CSV at csvPath into an empty medicines table and
// returns the number of rows inserted. A populated table is left untouched,
// and malformed rows are skipped.
func LoadMedicines(ctx context.Context, db *sqlx.DB, csvPath string, logg *logger.Logger) (int, error) {
	if logg == nil {
		logg = logger.Nop()
	}
	ctx = logg.WithField(ctx, "seed_csv", csvPath)

	var existing int64
	if err := db.GetContext(ctx, &existing, `SELECT COUNT(*) FROM medicines`); err != nil {
		return 0, fmt.Errorf("count medicines: %w", err)
	}
	if existing > 0 {
		logg.Debug(ctx, "medicines table already populated, skipping seed")
		return 0, nil
	}

	file, err := os.Open(csvPath)
	if errors.Is(err, os.ErrNotExist) {
		logg.Warn(ctx, "seed file not found, skipping")
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("open seed file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read seed header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return 0, err
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("start seed transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, tx.Rebind(`INSERT INTO medicines (name, company, price, quantity, expiry_date) VALUES (?, ?, ?, ?, ?)`))
	if err != nil {
		return 0, fmt.Errorf("prepare seed insert: %w", err)
	}
	defer stmt.Close()

	rows := 0
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			logg.Warn(logg.WithField(ctx, "line", line), "unreadable seed row: "+err.Error())
			continue
		}
		if len(record) < len(Columns) {
			logg.Warn(logg.WithField(ctx, "line", line), "seed row has too few columns")
			continue
		}

		m, err := inventory.NewMedicine(inventory.NewMedicineInput{
			Name:    record[0],
			Company: record[1],
			Price:   record[2],
			Qty:     record[3],
			Expiry:  record[4],
		})
		if err != nil {
			logg.Warn(logg.WithField(ctx, "line", line), "invalid seed row: "+err.Error())
			continue
		}

		if _, err := stmt.ExecContext(ctx, m.Name, m.Company, m.Price, m.Quantity, m.ExpiryDate); err != nil {
			return 0, fmt.Errorf("insert seed row %d: %w", line, err)
		}
		rows++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed: %w", err)
	}
	logg.Info(logg.WithField(ctx, "rows", rows), "seeded medicines")
	return rows, nil
}

func checkHeader(header []string) error {
	if len(header) < len(Columns) {
		return fmt.Errorf("seed header must be %s", strings.Join(Columns, ","))
	}
	for i, want := range Columns {
		got := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff")))
		if got != want {
			return fmt.Errorf("seed header column %d is %q, want %q", i+1, header[i], want)
		}
	}
	return nil
}
