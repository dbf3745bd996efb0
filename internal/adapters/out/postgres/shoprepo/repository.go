package shoprepo

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GormShopRepository implements ports.ShopRepository using GORM.
type GormShopRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormShopRepository creates a repository reporting saved shops to tracker.
func NewGormShopRepository(db *gorm.DB, tracker aggregateTracker) *GormShopRepository {
	return &GormShopRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new shop.
func (r *GormShopRepository) Add(ctx context.Context, aggregate *catalog.Shop) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the available balance with a compare-and-swap on the version.
// Contact details are owned elsewhere and left untouched.
func (r *GormShopRepository) Update(ctx context.Context, aggregate *catalog.Shop) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ShopDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"available_balance": dto.AvailableBalance,
			"outstanding_debt":  dto.OutstandingDebt,
			"version":           gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&ShopDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("shopId", aggregate.ID().String())
		}
		return errs.NewVersionConflictError("shop", aggregate.ID().String(), aggregate.Version())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get loads one shop or returns errs.ObjectNotFoundError.
func (r *GormShopRepository) Get(ctx context.Context, id kernel.UUID) (*catalog.Shop, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShopDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shopId", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetMany loads the shops with the given ids in no particular order; missing ids are
// left out.
func (r *GormShopRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*catalog.Shop, error) {
	if len(ids) == 0 {
		return []*catalog.Shop{}, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		keys = append(keys, id.String())
	}

	var dtos []ShopDTO
	if err := r.db.WithContext(ctx).Where("id = ANY(?::uuid[])", pq.Array(keys)).Find(&dtos).Error; err != nil {
		return nil, err
	}

	shops := make([]*catalog.Shop, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		shops = append(shops, s)
	}

	return shops, nil
}
