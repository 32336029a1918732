package queries

import (
	"context"
	"strings"

	"ordertrack/internal/core/domain/model/actor"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads order projections from the database, scoped
// to the actor's visibility and narrowed by the query filter.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order listings.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the query. Results are ordered by creation time, newest
// first; a listing that matches nothing returns an empty slice.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		sb   strings.Builder
		args []any
	)
	sb.WriteString(`
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
		WHERE 1 = 1
	`)

	switch {
	case query.Actor().Is(actor.RoleMerchant):
		sb.WriteString(" AND originator_id = ?")
		args = append(args, query.Actor().ID().String())
	case query.Actor().Is(actor.RoleDriver):
		sb.WriteString(" AND agent_id = ?")
		args = append(args, query.Actor().ID().String())
	}

	filter := query.Filter()
	if filter.Status != nil {
		sb.WriteString(" AND status = ?")
		args = append(args, int(*filter.Status))
	}
	if filter.CustomerName != "" {
		sb.WriteString(" AND customer_name ILIKE ?")
		args = append(args, "%"+filter.CustomerName+"%")
	}
	if filter.Phone != "" {
		sb.WriteString(" AND phone = ?")
		args = append(args, filter.Phone)
	}
	if filter.CreatedFrom != nil {
		sb.WriteString(" AND created_at >= ?")
		args = append(args, *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		sb.WriteString(" AND created_at < ?")
		args = append(args, *filter.CreatedTo)
	}

	sb.WriteString(" ORDER BY created_at DESC, id")

	rows, err := h.db.WithContext(ctx).Raw(sb.String(), args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := make([]OrderResponse, 0)
	for rows.Next() {
		response, scanErr := scanOrderRow(rows)
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
