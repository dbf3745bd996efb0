// Package taskrepo stores the reconciliation outbox. Rows are appended by the
// status-change transaction and drained in seq order by the background job.
package taskrepo

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/reconciliation"

	"github.com/google/uuid"
)

// TaskDTO is the row of the reconciliation_tasks table. Seq orders pending tasks.
type TaskDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Seq       int64      `gorm:"autoIncrement;not null;uniqueIndex"`
	OrderID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Kind      string     `gorm:"type:varchar(64);not null"`
	Attempts  int        `gorm:"not null;default:0"`
	LastError string     `gorm:"type:text"`
	DoneAt    *time.Time `gorm:"index"`
	CreatedAt time.Time  `gorm:"not null"`
}

// TableName overrides the GORM default.
func (TaskDTO) TableName() string {
	return "reconciliation_tasks"
}

func fromDomain(t *reconciliation.Task) TaskDTO {
	return TaskDTO{
		ID:        t.ID().Bytes(),
		OrderID:   t.OrderID().Bytes(),
		Kind:      string(t.Kind()),
		Attempts:  t.Attempts(),
		LastError: t.LastError(),
		DoneAt:    t.DoneAt(),
		CreatedAt: t.CreatedAt(),
	}
}

func toDomain(dto TaskDTO) (*reconciliation.Task, error) {
	return reconciliation.RestoreTask(
		kernel.UUIDFromGoogle(dto.ID),
		kernel.UUIDFromGoogle(dto.OrderID),
		reconciliation.Kind(dto.Kind),
		dto.Attempts,
		dto.LastError,
		dto.DoneAt,
		dto.CreatedAt,
	)
}
