// Package http exposes the order lifecycle over a JSON API and a Server-Sent
// Events stream. Every route requires a bearer credential; role-based rules
// are enforced by the use case layer and surface here as 403s.
package http

import (
	"errors"
	"net/http"
	"time"

	"ordertrack/internal/core/application/usecases/commands"
	"ordertrack/internal/core/application/usecases/queries"
	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/core/ports"
	"ordertrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler   commands.CreateOrderCommandHandler
	assignAgentHandler   commands.AssignAgentCommandHandler
	unassignAgentHandler commands.UnassignAgentCommandHandler
	advanceStatusHandler commands.AdvanceStatusCommandHandler
	cancelOrderHandler   commands.CancelOrderCommandHandler

	getOrderHandler   queries.GetOrderQueryHandler
	listOrdersHandler queries.ListOrdersQueryHandler
	getHistoryHandler queries.GetHistoryQueryHandler

	stream *StreamGateway
}

// NewServer creates an HTTP server with the required command and query
// handlers and the stream gateway.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	assignAgentHandler commands.AssignAgentCommandHandler,
	unassignAgentHandler commands.UnassignAgentCommandHandler,
	advanceStatusHandler commands.AdvanceStatusCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	getHistoryHandler queries.GetHistoryQueryHandler,
	stream *StreamGateway,
) *Server {
	return &Server{
		createOrderHandler:   createOrderHandler,
		assignAgentHandler:   assignAgentHandler,
		unassignAgentHandler: unassignAgentHandler,
		advanceStatusHandler: advanceStatusHandler,
		cancelOrderHandler:   cancelOrderHandler,
		getOrderHandler:      getOrderHandler,
		listOrdersHandler:    listOrdersHandler,
		getHistoryHandler:    getHistoryHandler,
		stream:               stream,
	}
}

// RegisterRoutes mounts the API under /api/v1, all behind the credential
// middleware.
func (s *Server) RegisterRoutes(e *echo.Echo, verifier ports.CredentialVerifier) {
	api := e.Group("/api/v1", AuthMiddleware(verifier))

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/stream", s.StreamOrders)
	api.GET("/orders/:orderId", s.GetOrder)
	api.GET("/orders/:orderId/history", s.GetHistory)
	api.POST("/orders/:orderId/assign", s.AssignAgent)
	api.POST("/orders/:orderId/unassign", s.UnassignAgent)
	api.POST("/orders/:orderId/status", s.AdvanceStatus)
	api.POST("/orders/:orderId/cancel", s.CancelOrder)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	act, ok := actorFromContext(c)
	if !ok {
		return unauthenticated(c)
	}

	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), act,
		req.CustomerName, req.Address, req.PickupAddress, req.Phone, req.Cost, req.Details,
		provenanceFrom(c),
	)
	if err != nil {
		return badRequest(c, err.Error())
	}

	result, err := s.createOrderHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.mapError(c, err)
	}

	return c.JSON(http.StatusCreated, toMutationResponse(result))
}

// GetOrder handles GET /api/v1/orders/:orderId.
func (s *Server) GetOrder(c echo.Context) error {
	act, ok := actorFromContext(c)
	if !ok {
		return unauthenticated(c)
	}

	orderID, err := kernel.UUIDFromString(c.Param("orderId"))
	if err != nil {
		return badRequest(c, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID, act)
	if err != nil {
		return badRequest(c, err.Error())
	}

	response, err := s.getOrderHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.mapError(c, err)
	}

	return c.JSON(http.StatusOK, toOrderResponse(response))
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(c echo.Context) error {
	act, ok := actorFromContext(c)
	if !ok {
		return unauthenticated(c)
	}

	filter, err := listFilterFrom(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	query, err := queries.NewListOrdersQuery(act, filter)
	if err != nil {
		return badRequest(c, err.Error())
	}

	responses, err := s.listOrdersHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.mapError(c, err)
	}

	out := make([]OrderResponse, len(responses))
	for i, response := range responses {
		out[i] = toOrderResponse(response)
	}
	return c.JSON(http.StatusOK, out)
}

// GetHistory handles GET /api/v1/orders/:orderId/history.
func (s *Server) GetHistory(c echo.Context) error {
	act, ok := actorFromContext(c)
	if !ok {
		return unauthenticated(c)
	}

	orderID, err := kernel.UUIDFromString(c.Param("orderId"))
	if err != nil {
		return badRequest(c, "Invalid order id")
	}

	query, err := queries.NewGetHistoryQuery(orderID, act)
	if err != nil {
		return badRequest(c, err.Error())
	}

	responses, err := s.getHistoryHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.mapError(c, err)
	}

	out := make([]HistoryEntryResponse, len(responses))
	for i, response := range responses {
		out[i] = toHistoryEntryResponse(response)
	}
	return c.JSON(http.StatusOK, out)
}

// AssignAgent handles POST /api/v1/orders/:orderId/assign.
func (s *Server) AssignAgent(c echo.Context) error {
	act, ok := actorFromContext(c)
	if !ok {
		return unauthenticated(c)
	}

	orderID, err := kernel.UUIDFromString(c.Param("orderId"))
	if err != nil {
		return badRequest(c, "Invalid order id")
	}

	var req AssignAgentRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	agentID, err := kernel.UUIDFromString(req.AgentID)
	if err != nil {
		return badRequest(c, "Invalid agent id")
	}

	cmd, err := commands.NewAssignAgentCommand(orderID, agentID, req.ExpectedSeq, act, provenanceFrom(c))
	if err != nil {
		return badRequest(c, err.Error())
	}

	result, err := s.assignAgentHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.mapError(c, err)
	}

	return c.JSON(http.StatusOK, toMutationResponse(result))
}

// UnassignAgent handles POST /api/v1/orders/:orderId/unassign.
func (s *Server) UnassignAgent(c echo.Context) error {
	act, ok := actorFromContext(c)
	if !ok {
		return unauthenticated(c)
	}

	orderID, err := kernel.UUIDFromString(c.Param("orderId"))
	if err != nil {
		return badRequest(c, "Invalid order id")
	}

	var req UnassignAgentRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewUnassignAgentCommand(orderID, req.ExpectedSeq, act, provenanceFrom(c))
	if err != nil {
		return badRequest(c, err.Error())
	}

	result, err := s.unassignAgentHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.mapError(c, err)
	}

	return c.JSON(http.StatusOK, toMutationResponse(result))
}

// AdvanceStatus handles POST /api/v1/orders/:orderId/status.
func (s *Server) AdvanceStatus(c echo.Context) error {
	act, ok := actorFromContext(c)
	if !ok {
		return unauthenticated(c)
	}

	orderID, err := kernel.UUIDFromString(c.Param("orderId"))
	if err != nil {
		return badRequest(c, "Invalid order id")
	}

	var req AdvanceStatusRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	next, err := order.StatusFromString(req.Status)
	if err != nil {
		return badRequest(c, "Invalid status")
	}

	cmd, err := commands.NewAdvanceStatusCommand(orderID, next, req.ExpectedSeq, act, provenanceFrom(c))
	if err != nil {
		return badRequest(c, err.Error())
	}

	result, err := s.advanceStatusHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.mapError(c, err)
	}

	return c.JSON(http.StatusOK, toMutationResponse(result))
}

// CancelOrder handles POST /api/v1/orders/:orderId/cancel.
func (s *Server) CancelOrder(c echo.Context) error {
	act, ok := actorFromContext(c)
	if !ok {
		return unauthenticated(c)
	}

	orderID, err := kernel.UUIDFromString(c.Param("orderId"))
	if err != nil {
		return badRequest(c, "Invalid order id")
	}

	var req CancelOrderRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, req.ExpectedSeq, act, provenanceFrom(c))
	if err != nil {
		return badRequest(c, err.Error())
	}

	result, err := s.cancelOrderHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.mapError(c, err)
	}

	return c.JSON(http.StatusOK, toMutationResponse(result))
}

// StreamOrders handles GET /api/v1/orders/stream.
func (s *Server) StreamOrders(c echo.Context) error {
	if _, ok := actorFromContext(c); !ok {
		return unauthenticated(c)
	}
	return s.stream.Serve(c)
}

func (s *Server) mapError(c echo.Context, err error) error {
	var conflict *commands.ConflictError
	if errors.As(err, &conflict) {
		return c.JSON(http.StatusConflict, ConflictResponse{
			Code:    http.StatusConflict,
			Message: "Order was modified concurrently",
			OrderID: conflict.OrderID,
			Seq:     conflict.Seq,
			Status:  conflict.Status.String(),
		})
	}

	switch {
	// A conflict whose post-miss re-read failed carries no current state,
	// but it is still a conflict: the caller should re-read and retry, not
	// treat the order as broken.
	case errors.Is(err, errs.ErrVersionConflict):
		return c.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: "Order was modified concurrently",
		})
	case errors.Is(err, commands.ErrForbidden), errors.Is(err, queries.ErrForbidden):
		return c.JSON(http.StatusForbidden, ErrorResponse{
			Code:    http.StatusForbidden,
			Message: "Operation is not permitted for this role",
		})
	case errors.Is(err, ports.ErrUnauthenticated):
		return unauthenticated(c)
	case errors.Is(err, errs.ErrObjectNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: "Order not found",
		})
	case errors.Is(err, order.ErrIllegalTransition),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return badRequest(c, err.Error())
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}

func toMutationResponse(result commands.MutationResult) MutationResponse {
	return MutationResponse{
		OrderID: result.OrderID.String(),
		Status:  result.Status.String(),
		Seq:     result.Seq,
	}
}

func provenanceFrom(c echo.Context) commands.Provenance {
	return commands.Provenance{
		IP:        c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func unauthenticated(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, ErrorResponse{
		Code:    http.StatusUnauthorized,
		Message: "Invalid credentials",
	})
}

func listFilterFrom(c echo.Context) (queries.ListOrdersFilter, error) {
	var filter queries.ListOrdersFilter

	if raw := c.QueryParam("status"); raw != "" {
		status, err := order.StatusFromString(raw)
		if err != nil {
			return queries.ListOrdersFilter{}, errors.New("invalid status filter")
		}
		filter.Status = &status
	}
	filter.CustomerName = c.QueryParam("customerName")
	filter.Phone = c.QueryParam("phone")

	if raw := c.QueryParam("createdFrom"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return queries.ListOrdersFilter{}, errors.New("invalid createdFrom filter")
		}
		filter.CreatedFrom = &from
	}
	if raw := c.QueryParam("createdTo"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return queries.ListOrdersFilter{}, errors.New("invalid createdTo filter")
		}
		filter.CreatedTo = &to
	}

	return filter, nil
}
