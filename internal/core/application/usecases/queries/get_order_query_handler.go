package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"ordertrack/internal/core/domain/model/actor"
	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads a single order projection from the database and
// enforces per-role visibility.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order reads.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ErrObjectNotFound when no order
// has the requested identifier and ErrForbidden when the order exists but is
// outside the actor's visibility.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			originator_id,
			agent_id,
			customer_name,
			address,
			pickup_address,
			phone,
			cost,
			details,
			status,
			seq,
			created_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().String()).Row()

	response, err := scanOrderRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return OrderResponse{}, errs.NewObjectNotFoundError("orderId", query.OrderID().String())
		}
		return OrderResponse{}, err
	}

	if !canSeeOrder(query.Actor(), response) {
		return OrderResponse{}, ErrForbidden
	}

	return response, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrderRow(row rowScanner) (OrderResponse, error) {
	var (
		id            uuid.UUID
		originatorID  uuid.UUID
		agentID       uuid.NullUUID
		customerName  string
		address       string
		pickupAddress string
		phone         string
		cost          sql.NullFloat64
		details       string
		status        int
		seq           int64
		createdAt     time.Time
	)

	if err := row.Scan(
		&id,
		&originatorID,
		&agentID,
		&customerName,
		&address,
		&pickupAddress,
		&phone,
		&cost,
		&details,
		&status,
		&seq,
		&createdAt,
	); err != nil {
		return OrderResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return OrderResponse{}, err
	}
	originator, err := kernel.UUIDFromBytes(originatorID[:])
	if err != nil {
		return OrderResponse{}, err
	}

	response := OrderResponse{
		ID:            orderID,
		OriginatorID:  originator,
		CustomerName:  customerName,
		Address:       address,
		PickupAddress: pickupAddress,
		Phone:         phone,
		Details:       details,
		Status:        order.Status(status),
		Seq:           seq,
		CreatedAt:     createdAt,
	}

	if agentID.Valid {
		agent, agentErr := kernel.UUIDFromBytes(agentID.UUID[:])
		if agentErr != nil {
			return OrderResponse{}, agentErr
		}
		response.AgentID = &agent
	}
	if cost.Valid {
		response.Cost = &cost.Float64
	}

	return response, nil
}

func canSeeOrder(act actor.Actor, response OrderResponse) bool {
	switch {
	case act.Is(actor.RoleAdmin):
		return true
	case act.Is(actor.RoleMerchant):
		return response.OriginatorID.IsEqual(act.ID())
	case act.Is(actor.RoleDriver):
		return response.AgentID != nil && response.AgentID.IsEqual(act.ID())
	default:
		return false
	}
}
