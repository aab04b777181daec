package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectPayroll is one aggregated payroll fund row per project. The table
// is fully replaced on every pipeline run; AnalysisDate is stamped at
// insertion time, never sourced from input data.
type ProjectPayroll struct {
	ID           uint            `json:"id" csv:"id" gorm:"primaryKey;autoIncrement"`
	ProjectID    int             `json:"project_id" csv:"project_id" gorm:"not null;index"`
	TotalHours   float64         `json:"total_hours" csv:"total_hours" gorm:"not null"`
	TotalPayment decimal.Decimal `json:"total_payment" csv:"total_payment" gorm:"type:decimal(20,2);not null"`
	AnalysisDate time.Time       `json:"analysis_date" csv:"analysis_date" gorm:"autoCreateTime"`
}

// TableName keeps the historical reporting table name.
func (ProjectPayroll) TableName() string {
	return "project_fot"
}
