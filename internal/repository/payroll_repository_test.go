package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"fotline/internal/errors"
	"fotline/internal/model"
)

func newTestRepo(t *testing.T) PayrollRepository {
	t.Helper()
	gormDB, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)

	repo := NewPayrollRepository(gormDB)
	require.NoError(t, repo.Migrate(context.Background()))
	return repo
}

func payrollRows() []model.ProjectPayroll {
	return []model.ProjectPayroll{
		{ProjectID: 1, TotalHours: 10, TotalPayment: decimal.NewFromInt(500)},
		{ProjectID: 2, TotalHours: 5, TotalPayment: decimal.NewFromInt(150)},
		{ProjectID: 3, TotalHours: 8, TotalPayment: decimal.NewFromInt(400)},
	}
}

func TestReplaceAll_EmptyRowsRejected(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.ReplaceAll(context.Background(), nil)

	assert.ErrorIs(t, err, errors.ErrNoAggregates)
}

func TestReplaceAll_IsIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, payrollRows()))
	require.NoError(t, repo.ReplaceAll(ctx, payrollRows()))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	rows, err := repo.ListByPaymentDesc(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.False(t, row.AnalysisDate.IsZero(), "analysis date must be stamped at insert")
	}
}

func TestReplaceAll_DropsPreviousContents(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, payrollRows()))
	require.NoError(t, repo.ReplaceAll(ctx, []model.ProjectPayroll{
		{ProjectID: 9, TotalHours: 1, TotalPayment: decimal.NewFromInt(20)},
	}))

	rows, err := repo.ListByPaymentDesc(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 9, rows[0].ProjectID)
}

func TestListByPaymentDesc_Ordering(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, payrollRows()))

	rows, err := repo.ListByPaymentDesc(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []int{1, 3, 2}, []int{rows[0].ProjectID, rows[1].ProjectID, rows[2].ProjectID})
	assert.True(t, rows[0].TotalPayment.GreaterThanOrEqual(rows[1].TotalPayment))
	assert.True(t, rows[1].TotalPayment.GreaterThanOrEqual(rows[2].TotalPayment))
}
