package queries

import (
	"context"
	"encoding/json"
	"time"

	"ordertrack/internal/core/domain/model/actor"
	"ordertrack/internal/core/domain/model/history"
	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetHistoryQueryHandler reads an order's audit trail from the database.
type GetHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetHistoryQueryHandler creates a handler for audit trail reads.
func NewGetHistoryQueryHandler(db *gorm.DB) GetHistoryQueryHandler {
	return GetHistoryQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ErrObjectNotFound when the order
// itself does not exist; an existing order with no recorded entries yields
// an empty slice.
func (h GetHistoryQueryHandler) Handle(ctx context.Context, query GetHistoryQuery) ([]HistoryEntryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var exists bool
	err := h.db.WithContext(ctx).
		Raw("SELECT EXISTS (SELECT 1 FROM orders WHERE id = ?)", query.OrderID().String()).
		Row().Scan(&exists)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NewObjectNotFoundError("orderId", query.OrderID().String())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			status,
			seq,
			updated_by,
			role,
			metadata,
			created_at
		FROM order_history
		WHERE order_id = ?
		ORDER BY seq, created_at
	`, query.OrderID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := make([]HistoryEntryResponse, 0)
	for rows.Next() {
		response, scanErr := scanHistoryRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		responses = append(responses, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}

func scanHistoryRow(row rowScanner) (HistoryEntryResponse, error) {
	var (
		id        uuid.UUID
		orderID   uuid.UUID
		status    int
		seq       int64
		updatedBy uuid.UUID
		role      int
		metadata  []byte
		createdAt time.Time
	)

	if err := row.Scan(
		&id,
		&orderID,
		&status,
		&seq,
		&updatedBy,
		&role,
		&metadata,
		&createdAt,
	); err != nil {
		return HistoryEntryResponse{}, err
	}

	entryID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return HistoryEntryResponse{}, err
	}
	entryOrderID, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return HistoryEntryResponse{}, err
	}
	entryUpdatedBy, err := kernel.UUIDFromBytes(updatedBy[:])
	if err != nil {
		return HistoryEntryResponse{}, err
	}

	var meta history.Metadata
	if len(metadata) > 0 {
		if err = json.Unmarshal(metadata, &meta); err != nil {
			return HistoryEntryResponse{}, err
		}
	}

	return HistoryEntryResponse{
		ID:        entryID,
		OrderID:   entryOrderID,
		Status:    order.Status(status),
		Seq:       seq,
		UpdatedBy: entryUpdatedBy,
		Role:      actor.Role(role),
		Metadata:  meta,
		CreatedAt: createdAt,
	}, nil
}
