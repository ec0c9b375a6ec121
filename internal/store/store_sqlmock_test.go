package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medshop/m/domain"
	"medshop/m/internal/apperr"
	"medshop/m/internal/config"
	"medshop/m/internal/logger"
)

func newMockStore(t *testing.T, driver string) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return New(sqlx.NewDb(db, "sqlmock"), driver, logger.Nop()), mock
}

func TestStoreWrapsDriverErrors(t *testing.T) {
	s, mock := newMockStore(t, config.DriverSQLite)
	ctx := context.Background()
	boom := errors.New("database is locked")

	mock.ExpectQuery(`SELECT id, name, company, price, quantity, expiry_date FROM medicines ORDER BY id`).WillReturnError(boom)
	_, err := s.List(ctx)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeStore))
	assert.ErrorIs(t, err, boom)

	mock.ExpectExec(`UPDATE medicines SET quantity = \? WHERE id = \?`).WithArgs(int64(3), int64(7)).WillReturnError(boom)
	_, err = s.UpdateField(ctx, 7, FieldQuantity, int64(3))
	assert.True(t, apperr.IsCode(err, apperr.CodeStore))

	mock.ExpectExec(`DELETE FROM medicines WHERE id = \?`).WithArgs(int64(7)).WillReturnError(boom)
	_, err = s.Delete(ctx, 7)
	assert.True(t, apperr.IsCode(err, apperr.CodeStore))

	mock.ExpectQuery(`INSERT INTO medicines .* RETURNING id`).WillReturnError(boom)
	_, err = s.Add(ctx, domain.Medicine{Name: "X", Price: decimal.Zero})
	assert.True(t, apperr.IsCode(err, apperr.CodeStore))

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM medicines`).WillReturnError(boom)
	_, err = s.Count(ctx)
	assert.True(t, apperr.IsCode(err, apperr.CodeStore))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddUsesLastInsertIDOnMySQL(t *testing.T) {
	s, mock := newMockStore(t, config.DriverMySQL)

	mock.ExpectExec(`INSERT INTO medicines \(name, company, price, quantity, expiry_date\) VALUES \(\?, \?, \?, \?, \?\)$`).
		WillReturnResult(sqlmock.NewResult(42, 1))

	id, err := s.Add(context.Background(), domain.Medicine{Name: "Ors", Price: decimal.RequireFromString("1.20"), Quantity: 3})
	require.NoError(t, err)
	assert.EqualValues(t, 42, id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRowsAffectedErrorIsStoreError(t *testing.T) {
	s, mock := newMockStore(t, config.DriverSQLite)

	mock.ExpectExec(`DELETE FROM medicines`).WillReturnResult(sqlmock.NewErrorResult(errors.New("unsupported")))
	_, err := s.Delete(context.Background(), 1)
	assert.True(t, apperr.IsCode(err, apperr.CodeStore))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchEscapesPattern(t *testing.T) {
	s, mock := newMockStore(t, config.DriverSQLite)

	mock.ExpectQuery(`WHERE LOWER\(name\) LIKE LOWER\(\?\) ESCAPE '!'`).
		WithArgs(`%50!%!_OFF!!%`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "company", "price", "quantity", "expiry_date"}).
			AddRow(int64(1), "50%_OFF!", nil, "2.00", int64(1), nil))

	records, err := s.Search(context.Background(), "50%_OFF!")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "50%_OFF!", records[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}
