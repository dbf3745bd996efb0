package taskrepo

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/reconciliation"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository implements ports.TaskRepository using GORM.
type GormTaskRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormTaskRepository creates a repository reporting saved tasks to tracker.
func NewGormTaskRepository(db *gorm.DB, tracker aggregateTracker) *GormTaskRepository {
	return &GormTaskRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add queues a new task.
func (r *GormTaskRepository) Add(ctx context.Context, task *reconciliation.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	dto := fromDomain(task)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(task.ID(), task)
	return nil
}

// Update writes the progress columns. Callers hold the row lock taken by Lock.
func (r *GormTaskRepository) Update(ctx context.Context, task *reconciliation.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	dto := fromDomain(task)
	result := r.db.WithContext(ctx).
		Model(&TaskDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"attempts":   dto.Attempts,
			"last_error": dto.LastError,
			"done_at":    dto.DoneAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("taskId", task.ID().String())
	}

	r.tracker.TrackAggregate(task.ID(), task)
	return nil
}

// ListPending returns unfinished tasks oldest first without locking them.
func (r *GormTaskRepository) ListPending(ctx context.Context, limit, maxAttempts int) ([]*reconciliation.Task, error) {
	query := r.db.WithContext(ctx).Where("done_at IS NULL")
	if maxAttempts > 0 {
		query = query.Where("attempts < ?", maxAttempts)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var dtos []TaskDTO
	if err := query.Order("seq").Find(&dtos).Error; err != nil {
		return nil, err
	}

	tasks := make([]*reconciliation.Task, 0, len(dtos))
	for _, dto := range dtos {
		t, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}

	return tasks, nil
}

// Lock reads the task with FOR UPDATE SKIP LOCKED. A row held by another worker is
// skipped by the database and therefore reported as not found, same as a done task.
func (r *GormTaskRepository) Lock(ctx context.Context, id kernel.UUID) (*reconciliation.Task, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TaskDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate, Options: clause.LockingOptionsSkipLocked}).
		Where("id = ? AND done_at IS NULL", id.Bytes()).
		Take(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("taskId", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
