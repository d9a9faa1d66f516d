package campaigns

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockRepo(t *testing.T) (*Repo, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return NewRepo(gdb), mock
}

func TestRepo_ActiveByShop(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT * FROM `campaigns` WHERE shop = ? AND status = ? ORDER BY updated_at DESC",
	)).
		WithArgs("demo.myshopify.com", StatusActive).
		WillReturnRows(sqlmock.NewRows([]string{"id", "shop", "status", "placement", "target_type"}).
			AddRow("c1", "demo.myshopify.com", StatusActive, PlacementProduct, TargetAll))

	items, err := repo.ActiveByShop(context.Background(), "demo.myshopify.com")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "c1", items[0].ID)
	assert.Equal(t, TargetAll, items[0].TargetType)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_DeleteByShop(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `campaigns` WHERE shop = ?")).
		WithArgs("demo.myshopify.com").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	n, err := repo.DeleteByShop(context.Background(), "demo.myshopify.com")
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_UpdateMissingRowIsNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `campaigns` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), "missing", "demo.myshopify.com", map[string]any{"status": StatusActive})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}
