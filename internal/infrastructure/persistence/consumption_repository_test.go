package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/projops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockConsumptionRepository creates a GormConsumptionRepository with a mocked SQL connection
func newMockConsumptionRepository(t *testing.T) (*GormConsumptionRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormConsumptionRepository(gormDB), mock, mockDB
}

func TestGormConsumptionRepository_SumActiveAmount(t *testing.T) {
	t.Run("sums un-narrowed rows only", func(t *testing.T) {
		repo, mock, mockDB := newMockConsumptionRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		purchaseOrderID := uuid.New()

		rows := sqlmock.NewRows([]string{"total"}).AddRow("1234.50")

		mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) AS total FROM "consumptions" WHERE tenant_id = \$1 AND purchase_order_id = \$2 AND milestone_id IS NULL`).
			WithArgs(tenantID, purchaseOrderID).
			WillReturnRows(rows)

		total, err := repo.SumActiveAmount(context.Background(), tenantID, purchaseOrderID, nil, nil)

		assert.NoError(t, err)
		assert.True(t, total.Equal(decimal.RequireFromString("1234.50")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("narrows to a milestone and excludes the edited row", func(t *testing.T) {
		repo, mock, mockDB := newMockConsumptionRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		purchaseOrderID := uuid.New()
		milestoneID := uuid.New()
		excludeID := uuid.New()

		rows := sqlmock.NewRows([]string{"total"}).AddRow("500")

		mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) AS total FROM "consumptions" WHERE tenant_id = \$1 AND purchase_order_id = \$2 AND milestone_id = \$3 AND id <> \$4`).
			WithArgs(tenantID, purchaseOrderID, milestoneID, excludeID).
			WillReturnRows(rows)

		total, err := repo.SumActiveAmount(context.Background(), tenantID, purchaseOrderID, &milestoneID, &excludeID)

		assert.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromInt(500)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty pool sums to zero", func(t *testing.T) {
		repo, mock, mockDB := newMockConsumptionRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		purchaseOrderID := uuid.New()

		rows := sqlmock.NewRows([]string{"total"}).AddRow("0")

		mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) AS total FROM "consumptions"`).
			WithArgs(tenantID, purchaseOrderID).
			WillReturnRows(rows)

		total, err := repo.SumActiveAmount(context.Background(), tenantID, purchaseOrderID, nil, nil)

		assert.NoError(t, err)
		assert.True(t, total.IsZero())
	})
}

func TestGormConsumptionRepository_FindByID(t *testing.T) {
	t.Run("returns nil for non-existent consumption", func(t *testing.T) {
		repo, mock, mockDB := newMockConsumptionRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		id := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "consumptions" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, id, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		consumption, err := repo.FindByID(context.Background(), tenantID, id)

		assert.NoError(t, err)
		assert.Nil(t, consumption)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormConsumptionRepository_Delete(t *testing.T) {
	t.Run("deletes existing consumption", func(t *testing.T) {
		repo, mock, mockDB := newMockConsumptionRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		id := uuid.New()

		mock.ExpectExec(`DELETE FROM "consumptions" WHERE tenant_id = \$1 AND id = \$2`).
			WithArgs(tenantID, id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), tenantID, id)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when no row matches", func(t *testing.T) {
		repo, mock, mockDB := newMockConsumptionRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		id := uuid.New()

		mock.ExpectExec(`DELETE FROM "consumptions" WHERE tenant_id = \$1 AND id = \$2`).
			WithArgs(tenantID, id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), tenantID, id)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
