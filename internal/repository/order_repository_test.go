package repository

import (
	"testing"
	"time"

	"burgero/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 mockDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestOrderRepositoryCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "orders"`).
		WithArgs("Alice", "555-1234", "2x Classic Burger", "18:30", "pending", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	order := &models.Order{
		CustomerName: "Alice",
		Phone:        "555-1234",
		OrderDetails: "2x Classic Burger",
		OrderTime:    "18:30",
		Status:       "pending",
	}
	require.NoError(t, repo.Create(order))
	assert.Equal(t, uint(1), order.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepositoryGetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "customer_name", "phone", "order_details", "order_time", "status", "created_at", "updated_at"}).
		AddRow(7, "Alice", "555-1234", "2x Classic Burger", "18:30", "preparing", now, now)
	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE "orders"\."id" = \$1`).
		WithArgs(7).
		WillReturnRows(rows)

	order, err := repo.GetByID(7)
	require.NoError(t, err)
	assert.Equal(t, "Alice", order.CustomerName)
	assert.Equal(t, "preparing", order.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepositoryGetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "orders"`).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(99)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestOrderRepositoryUpdateStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "orders" SET`).
		WithArgs("ready", sqlmock.AnyArg(), 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	updated, err := repo.UpdateStatus(7, "ready")
	require.NoError(t, err)
	assert.True(t, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepositoryUpdateStatusMissingRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "orders" SET`).
		WithArgs("ready", sqlmock.AnyArg(), 99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	updated, err := repo.UpdateStatus(99, "ready")
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestOrderRepositoryDelete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "orders"`).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	deleted, err := repo.Delete(7)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepositoryGetStatistics(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)

	today := time.Now().Truncate(24 * time.Hour)
	mock.ExpectQuery(`SELECT(.|\n)+FROM orders(.|\n)+GROUP BY DATE\(created_at\)`).
		WillReturnRows(sqlmock.NewRows([]string{"date", "total_orders", "pending", "preparing", "ready", "cancelled"}).
			AddRow(today, 4, 1, 1, 2, 0))
	mock.ExpectQuery(`SELECT status, COUNT\(\*\) AS count(.|\n)+GROUP BY status`).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("pending", 1).
			AddRow("preparing", 1).
			AddRow("ready", 2))
	mock.ExpectQuery(`SELECT(.|\n)+COUNT\(\*\) AS total(.|\n)+FROM orders`).
		WillReturnRows(sqlmock.NewRows([]string{"total", "pending_total", "preparing_total", "ready_total", "cancelled_total"}).
			AddRow(4, 1, 1, 2, 0))

	stats, err := repo.GetStatistics()
	require.NoError(t, err)
	require.Len(t, stats.DailyStats, 1)
	assert.Equal(t, int64(4), stats.DailyStats[0].TotalOrders)
	assert.Len(t, stats.StatusStats, 3)
	assert.Equal(t, int64(4), stats.TotalStats.Total)
	assert.Equal(t, int64(2), stats.TotalStats.ReadyTotal)
	assert.NoError(t, mock.ExpectationsWereMet())
}
