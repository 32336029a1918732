// Package orderrepo persists order aggregates with GORM. It owns the seq
// column: domain code never advances an order's version, the conditional
// UPDATE in this package does, atomically with the state change.
package orderrepo

import (
	"time"

	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order
// aggregates. Indexed by originator, assigned driver and status to serve the
// listing and watchdog queries.
type OrderDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OriginatorID  uuid.UUID  `gorm:"type:uuid;index"`
	AgentID       *uuid.UUID `gorm:"type:uuid;index"`
	CustomerName  string
	Address       string
	PickupAddress string
	Phone         string
	Cost          *float64
	Details       string
	Status        int   `gorm:"index"`
	Seq           int64 `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var agentID *uuid.UUID
	if id := aggregate.AgentID(); id != nil {
		raw := id.Bytes()
		agentID = &raw
	}

	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		OriginatorID:  aggregate.OriginatorID().Bytes(),
		AgentID:       agentID,
		CustomerName:  aggregate.CustomerName(),
		Address:       aggregate.Address(),
		PickupAddress: aggregate.PickupAddress(),
		Phone:         aggregate.Phone(),
		Cost:          aggregate.Cost(),
		Details:       aggregate.Details(),
		Status:        int(aggregate.Status()),
		Seq:           aggregate.Seq(),
		CreatedAt:     aggregate.CreatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	originatorID, err := kernel.UUIDFromBytes(dto.OriginatorID[:])
	if err != nil {
		return nil, err
	}

	var agentID *kernel.UUID
	if dto.AgentID != nil {
		aID, agentErr := kernel.UUIDFromBytes((*dto.AgentID)[:])
		if agentErr != nil {
			return nil, agentErr
		}

		agentID = &aID
	}

	return order.RestoreOrder(
		id,
		originatorID,
		agentID,
		dto.CustomerName,
		dto.Address,
		dto.PickupAddress,
		dto.Phone,
		dto.Cost,
		dto.Details,
		order.Status(dto.Status),
		dto.Seq,
		dto.CreatedAt,
	)
}
