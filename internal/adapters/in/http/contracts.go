package http

import (
	"time"

	"ordertrack/internal/core/application/usecases/queries"
)

// ErrorResponse is the error body returned for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ConflictResponse is returned with status 409 when a mutation presented a
// stale expected seq. It carries the order's current seq and status so the
// client can re-render and retry without an extra read.
type ConflictResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	OrderID string `json:"orderId"`
	Seq     int64  `json:"seq"`
	Status  string `json:"status"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	CustomerName  string   `json:"customerName"`
	Address       string   `json:"address"`
	PickupAddress string   `json:"pickupAddress,omitempty"`
	Phone         string   `json:"phone"`
	Cost          *float64 `json:"cost,omitempty"`
	Details       string   `json:"details,omitempty"`
}

// AssignAgentRequest is the body of POST /api/v1/orders/:orderId/assign.
type AssignAgentRequest struct {
	AgentID     string `json:"agentId"`
	ExpectedSeq int64  `json:"expectedSeq"`
}

// UnassignAgentRequest is the body of POST /api/v1/orders/:orderId/unassign.
type UnassignAgentRequest struct {
	ExpectedSeq int64 `json:"expectedSeq"`
}

// AdvanceStatusRequest is the body of POST /api/v1/orders/:orderId/status.
type AdvanceStatusRequest struct {
	Status      string `json:"status"`
	ExpectedSeq int64  `json:"expectedSeq"`
}

// CancelOrderRequest is the body of POST /api/v1/orders/:orderId/cancel.
type CancelOrderRequest struct {
	ExpectedSeq int64 `json:"expectedSeq"`
}

// MutationResponse reports the accepted state of a mutated order. Seq is the
// version the client must present on its next mutation.
type MutationResponse struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
	Seq     int64  `json:"seq"`
}

// OrderResponse is the JSON projection of one order.
type OrderResponse struct {
	ID            string    `json:"id"`
	OriginatorID  string    `json:"originatorId"`
	AgentID       string    `json:"agentId,omitempty"`
	CustomerName  string    `json:"customerName"`
	Address       string    `json:"address"`
	PickupAddress string    `json:"pickupAddress,omitempty"`
	Phone         string    `json:"phone"`
	Cost          *float64  `json:"cost,omitempty"`
	Details       string    `json:"details,omitempty"`
	Status        string    `json:"status"`
	Seq           int64     `json:"seq"`
	CreatedAt     time.Time `json:"createdAt"`
}

// HistoryEntryResponse is the JSON projection of one audit record.
type HistoryEntryResponse struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"orderId"`
	Status     string    `json:"status"`
	Seq        int64     `json:"seq"`
	UpdatedBy  string    `json:"updatedBy"`
	Role       string    `json:"role"`
	Source     string    `json:"source,omitempty"`
	PrevStatus string    `json:"prevStatus,omitempty"`
	Agent      string    `json:"assignedAgent,omitempty"`
	IP         string    `json:"ip,omitempty"`
	UserAgent  string    `json:"userAgent,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toOrderResponse(response queries.OrderResponse) OrderResponse {
	out := OrderResponse{
		ID:            response.ID.String(),
		OriginatorID:  response.OriginatorID.String(),
		CustomerName:  response.CustomerName,
		Address:       response.Address,
		PickupAddress: response.PickupAddress,
		Phone:         response.Phone,
		Cost:          response.Cost,
		Details:       response.Details,
		Status:        response.Status.String(),
		Seq:           response.Seq,
		CreatedAt:     response.CreatedAt,
	}
	if response.AgentID != nil {
		out.AgentID = response.AgentID.String()
	}
	return out
}

func toHistoryEntryResponse(response queries.HistoryEntryResponse) HistoryEntryResponse {
	return HistoryEntryResponse{
		ID:         response.ID.String(),
		OrderID:    response.OrderID.String(),
		Status:     response.Status.String(),
		Seq:        response.Seq,
		UpdatedBy:  response.UpdatedBy.String(),
		Role:       response.Role.String(),
		Source:     response.Metadata.Source,
		PrevStatus: response.Metadata.PrevStatus,
		Agent:      response.Metadata.AssignedAgent,
		IP:         response.Metadata.IP,
		UserAgent:  response.Metadata.UserAgent,
		CreatedAt:  response.CreatedAt,
	}
}
