package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/realorrender/realorrender/src/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrReportNotFound is returned when no report exists for an id.
var ErrReportNotFound = errors.New("report not found")

// ReportRecord stores one finished verification report as opaque JSON.
// Reports are immutable once written; there is no update path.
type ReportRecord struct {
	VerificationID string    `gorm:"primaryKey;size:36;column:verification_id"`
	ReportJSON     string    `gorm:"column:report_json;type:text;not null"`
	CreatedAt      time.Time `gorm:"index:idx_reports_created"`
}

func (ReportRecord) TableName() string {
	return "verification_reports"
}

// Reports is the gorm-backed report store.
type Reports struct {
	db *gorm.DB
}

func NewReports(db *gorm.DB) *Reports {
	return &Reports{db: db}
}

func (r *Reports) Put(ctx context.Context, id string, report *types.VerificationReport) error {
	b, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	rec := ReportRecord{
		VerificationID: id,
		ReportJSON:     string(b),
		CreatedAt:      time.Now().UTC(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error
}

func (r *Reports) Get(ctx context.Context, id string) (*types.VerificationReport, error) {
	var rec ReportRecord
	err := r.db.WithContext(ctx).First(&rec, "verification_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, err
	}
	var report types.VerificationReport
	if err := json.Unmarshal([]byte(rec.ReportJSON), &report); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", id, err)
	}
	return &report, nil
}
