package repository

import (
	"context"

	"gorm.io/gorm"

	"fotline/internal/errors"
	"fotline/internal/model"
)

// insertBatchSize bounds a single bulk insert statement.
const insertBatchSize = 100

// PayrollRepository defines persistence for aggregated project payroll rows.
type PayrollRepository interface {
	Migrate(ctx context.Context) error
	ReplaceAll(ctx context.Context, rows []model.ProjectPayroll) error
	ListByPaymentDesc(ctx context.Context) ([]model.ProjectPayroll, error)
	Count(ctx context.Context) (int64, error)
}

type payrollRepository struct {
	db *gorm.DB
}

// NewPayrollRepository creates a new payroll repository.
func NewPayrollRepository(db *gorm.DB) PayrollRepository {
	return &payrollRepository{db: db}
}

// Migrate creates the project_fot table when absent.
func (r *payrollRepository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&model.ProjectPayroll{})
}

// ReplaceAll swaps the full table contents for the given rows. Delete and
// bulk insert run inside one transaction so an interrupted run never leaves
// the table half-replaced. An empty row set is rejected as an integrity
// error rather than truncating the table silently.
func (r *payrollRepository) ReplaceAll(ctx context.Context, rows []model.ProjectPayroll) error {
	if len(rows) == 0 {
		return errors.ErrNoAggregates
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.ProjectPayroll{}).Error; err != nil {
			return err
		}
		return tx.CreateInBatches(rows, insertBatchSize).Error
	})
}

// ListByPaymentDesc returns all payroll rows ordered by total payment,
// highest first.
func (r *payrollRepository) ListByPaymentDesc(ctx context.Context) ([]model.ProjectPayroll, error) {
	var rows []model.ProjectPayroll
	if err := r.db.WithContext(ctx).Order("total_payment DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of persisted payroll rows.
func (r *payrollRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.ProjectPayroll{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
