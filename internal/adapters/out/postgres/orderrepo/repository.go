package orderrepo

import (
	"context"
	"errors"
	"time"

	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order to the database at its initial seq.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// UpdateWithVersion writes the aggregate's mutable state with a single
// conditional UPDATE matching the expected seq, bumping the seq by one in
// the same statement. When no row matches, another writer got there first
// and errs.ErrVersionConflict is returned; the database row is untouched.
func (r *GormOrderRepository) UpdateWithVersion(ctx context.Context, aggregate *order.Order, expectedSeq int64) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	var agentID any
	if id := aggregate.AgentID(); id != nil {
		agentID = id.Bytes()
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND seq = ?", aggregate.ID().Bytes(), expectedSeq).
		Updates(map[string]any{
			"agent_id": agentID,
			"status":   int(aggregate.Status()),
			"seq":      expectedSeq + 1,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionConflictError("order", aggregate.ID().String())
	}

	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetStaleCreated retrieves orders that are still in Created status and were
// registered before the given instant. Used by the stale-order watchdog.
func (r *GormOrderRepository) GetStaleCreated(ctx context.Context, before time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "status = ? AND created_at < ?", int(order.Created), before).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, toErr := toDomain(dto)
		if toErr != nil {
			return nil, toErr
		}
		orders = append(orders, o)
	}

	return orders, nil
}
