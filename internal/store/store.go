package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"medshop/m/domain"
	"medshop/m/internal/apperr"
	"medshop/m/internal/config"
	"medshop/m/internal/logger"
)

// Field names a single mutable column of a medicine record.
type Field string

const (
	FieldName     Field = "name"
	FieldPrice    Field = "price"
	FieldQuantity Field = "quantity"
	FieldExpiry   Field = "expiry"
)

var fieldColumns = map[Field]string{
	FieldName:     "name",
	FieldPrice:    "price",
	FieldQuantity: "quantity",
	FieldExpiry:   "expiry_date",
}

// Valid reports whether f is one of the updatable fields.
func (f Field) Valid() bool {
	_, ok := fieldColumns[f]
	return ok
}

const selectColumns = `SELECT id, name, company, price, quantity, expiry_date FROM medicines`

// Store runs every inventory query against the medicines table.
type Store struct {
	db     *sqlx.DB
	driver string
	logg   *logger.Logger
}

// New wraps an open connection. driver selects dialect-specific statements.
func New(db *sqlx.DB, driver string, logg *logger.Logger) *Store {
	if logg == nil {
		logg = logger.Nop()
	}
	return &Store{db: db, driver: driver, logg: logg}
}

// Add inserts a new record and returns its generated id.
func (s *Store) Add(ctx context.Context, m domain.Medicine) (int64, error) {
	s.logg.Debug(ctx, "inserting medicine")
	query := `INSERT INTO medicines (name, company, price, quantity, expiry_date) VALUES (?, ?, ?, ?, ?)`
	args := []any{m.Name, m.Company, m.Price, m.Quantity, m.ExpiryDate}

	if s.driver == config.DriverMySQL {
		res, err := s.db.ExecContext(ctx, s.db.Rebind(query), args...)
		if err != nil {
			return 0, apperr.Wrap(apperr.CodeStore, err, "insert medicine")
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, apperr.Wrap(apperr.CodeStore, err, "read inserted id")
		}
		return id, nil
	}

	var id int64
	if err := s.db.QueryRowxContext(ctx, s.db.Rebind(query+` RETURNING id`), args...).Scan(&id); err != nil {
		return 0, apperr.Wrap(apperr.CodeStore, err, "insert medicine")
	}
	return id, nil
}

// Get loads one record by id.
func (s *Store) Get(ctx context.Context, id int64) (domain.Medicine, error) {
	var m domain.Medicine
	err := s.db.GetContext(ctx, &m, s.db.Rebind(selectColumns+` WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Medicine{}, apperr.Newf(apperr.CodeNotFound, "no medicine with ID %d", id)
	}
	if err != nil {
		return domain.Medicine{}, apperr.Wrap(apperr.CodeStore, err, "load medicine")
	}
	return m, nil
}

// List returns every record in storage order.
func (s *Store) List(ctx context.Context) ([]domain.Medicine, error) {
	return s.selectMany(ctx, "list medicines", selectColumns+` ORDER BY id`)
}

// Search returns records whose name contains substr, ignoring case.
func (s *Store) Search(ctx context.Context, substr string) ([]domain.Medicine, error) {
	pattern := "%" + escapeLike(substr) + "%"
	return s.selectMany(ctx, "search medicines",
		selectColumns+` WHERE LOWER(name) LIKE LOWER(?) ESCAPE '!' ORDER BY id`, pattern)
}

// UpdateField sets one column of one record and returns the number of rows
// changed. An unknown id changes nothing and is not an error.
func (s *Store) UpdateField(ctx context.Context, id int64, field Field, value any) (int64, error) {
	column, ok := fieldColumns[field]
	if !ok {
		return 0, apperr.Newf(apperr.CodeValidation, "unknown field %q", field)
	}
	ctx = s.logg.WithField(ctx, "field", string(field))
	s.logg.Debug(ctx, "updating medicine")

	res, err := s.db.ExecContext(ctx, s.db.Rebind(`UPDATE medicines SET `+column+` = ? WHERE id = ?`), value, id)
	if err != nil {
		return 0, apperr.Wrap(apperr.CodeStore, err, "update medicine")
	}
	return rowsAffected(res)
}

// Delete removes one record and returns the number of rows removed.
func (s *Store) Delete(ctx context.Context, id int64) (int64, error) {
	s.logg.Debug(ctx, "deleting medicine")
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM medicines WHERE id = ?`), id)
	if err != nil {
		return 0, apperr.Wrap(apperr.CodeStore, err, "delete medicine")
	}
	return rowsAffected(res)
}

// LowStock returns records with quantity at or below threshold.
func (s *Store) LowStock(ctx context.Context, threshold int64) ([]domain.Medicine, error) {
	return s.selectMany(ctx, "low stock report",
		selectColumns+` WHERE quantity <= ? ORDER BY quantity, id`, threshold)
}

// WithExpiry returns every record that has an expiry date, soonest first.
func (s *Store) WithExpiry(ctx context.Context) ([]domain.Medicine, error) {
	return s.selectMany(ctx, "expiry report",
		selectColumns+` WHERE expiry_date IS NOT NULL ORDER BY expiry_date, id`)
}

// Count returns the number of records.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM medicines`); err != nil {
		return 0, apperr.Wrap(apperr.CodeStore, err, "count medicines")
	}
	return n, nil
}

func (s *Store) selectMany(ctx context.Context, what, query string, args ...any) ([]domain.Medicine, error) {
	var records []domain.Medicine
	if err := s.db.SelectContext(ctx, &records, s.db.Rebind(query), args...); err != nil {
		return nil, apperr.Wrap(apperr.CodeStore, err, what)
	}
	return records, nil
}

func rowsAffected(res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, apperr.Wrap(apperr.CodeStore, err, "read affected rows")
	}
	return n, nil
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
