// Package historyrepo persists the append-only audit trail with GORM.
// Entries are only ever inserted and read, never updated or deleted.
package historyrepo

import (
	"encoding/json"
	"time"

	"ordertrack/internal/core/domain/model/actor"
	"ordertrack/internal/core/domain/model/history"
	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// EntryDTO represents the database structure for persisting audit records.
// Metadata is stored as a jsonb document since it is free-form context that
// queries never filter on.
type EntryDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	Status    int
	Seq       int64
	UpdatedBy uuid.UUID `gorm:"type:uuid"`
	Role      int
	Metadata  []byte `gorm:"type:jsonb"`
	CreatedAt time.Time
}

// TableName specifies the database table name for audit records.
func (EntryDTO) TableName() string {
	return "order_history"
}

func fromDomain(entry *history.Entry) (EntryDTO, error) {
	metadata, err := json.Marshal(entry.Metadata())
	if err != nil {
		return EntryDTO{}, err
	}

	return EntryDTO{
		ID:        entry.ID().Bytes(),
		OrderID:   entry.OrderID().Bytes(),
		Status:    int(entry.Status()),
		Seq:       entry.Seq(),
		UpdatedBy: entry.UpdatedBy().Bytes(),
		Role:      int(entry.Role()),
		Metadata:  metadata,
		CreatedAt: entry.CreatedAt(),
	}, nil
}

func toDomain(dto EntryDTO) (*history.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	updatedBy, err := kernel.UUIDFromBytes(dto.UpdatedBy[:])
	if err != nil {
		return nil, err
	}

	var metadata history.Metadata
	if len(dto.Metadata) > 0 {
		if err = json.Unmarshal(dto.Metadata, &metadata); err != nil {
			return nil, err
		}
	}

	return history.RestoreEntry(
		id,
		orderID,
		order.Status(dto.Status),
		dto.Seq,
		updatedBy,
		actor.Role(dto.Role),
		metadata,
		dto.CreatedAt,
	)
}
