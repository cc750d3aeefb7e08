// Package http exposes the fulfillment workflow over a REST API. Every
// mutation is a thin shell around a command handler: bind, validate, build
// the command, map domain errors onto status codes.
package http

import (
	"errors"
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/item"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler    commands.CreateOrderCommandHandler
	transitionItemHandler commands.TransitionItemCommandHandler
	lockItemHandler       commands.LockItemCommandHandler
	unlockItemHandler     commands.UnlockItemCommandHandler
	forceSetItemHandler   commands.ForceSetItemCommandHandler
	cancelItemHandler     commands.CancelItemCommandHandler
	cancelOrderHandler    commands.CancelOrderCommandHandler
	bulkTransitionHandler commands.BulkTransitionCommandHandler

	orderSummaryHandler    queries.GetOrderSummaryQueryHandler
	attentionOrdersHandler queries.GetAttentionOrdersQueryHandler
}

// NewServer creates the HTTP server with its command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	transitionItemHandler commands.TransitionItemCommandHandler,
	lockItemHandler commands.LockItemCommandHandler,
	unlockItemHandler commands.UnlockItemCommandHandler,
	forceSetItemHandler commands.ForceSetItemCommandHandler,
	cancelItemHandler commands.CancelItemCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	bulkTransitionHandler commands.BulkTransitionCommandHandler,
	orderSummaryHandler queries.GetOrderSummaryQueryHandler,
	attentionOrdersHandler queries.GetAttentionOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:     createOrderHandler,
		transitionItemHandler:  transitionItemHandler,
		lockItemHandler:        lockItemHandler,
		unlockItemHandler:      unlockItemHandler,
		forceSetItemHandler:    forceSetItemHandler,
		cancelItemHandler:      cancelItemHandler,
		cancelOrderHandler:     cancelOrderHandler,
		bulkTransitionHandler:  bulkTransitionHandler,
		orderSummaryHandler:    orderSummaryHandler,
		attentionOrdersHandler: attentionOrdersHandler,
	}
}

// RegisterRoutes mounts every endpoint on the echo instance and installs the
// request validator.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Validator = NewRequestValidator()

	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders/attention", s.GetAttentionOrders)
	v1.GET("/orders/:order_id/summary", s.GetOrderSummary)
	v1.POST("/orders/:order_id/cancel", s.CancelOrder)
	v1.POST("/orders/:order_id/items/:item_id/transition", s.TransitionItem)
	v1.POST("/orders/:order_id/items/:item_id/lock", s.LockItem)
	v1.POST("/orders/:order_id/items/:item_id/unlock", s.UnlockItem)
	v1.POST("/orders/:order_id/items/:item_id/force-set", s.ForceSetItem)
	v1.POST("/orders/:order_id/items/:item_id/cancel", s.CancelItem)
	v1.POST("/items/bulk-transition", s.BulkTransition)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return badRequest(ctx, err)
	}

	lines := make([]commands.OrderLine, 0, len(req.Lines))
	for _, line := range req.Lines {
		lines = append(lines, commands.OrderLine{
			Name:     line.Name,
			Price:    line.Price,
			Quantity: line.Quantity,
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, lines, req.Shipping)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"order_id": orderID.String()})
}

// TransitionItem handles POST /api/v1/orders/:order_id/items/:item_id/transition.
func (s *Server) TransitionItem(ctx echo.Context) error {
	orderID, itemID, err := pathIDs(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req TransitionItemRequest
	if err = bindAndValidate(ctx, &req); err != nil {
		return badRequest(ctx, err)
	}

	target, actor, err := targetAndActor(req.Target, req.Actor)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewTransitionItemCommand(orderID, itemID, target, actor, req.Note)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.transitionItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// LockItem handles POST /api/v1/orders/:order_id/items/:item_id/lock.
func (s *Server) LockItem(ctx echo.Context) error {
	orderID, itemID, err := pathIDs(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req LockItemRequest
	if err = bindAndValidate(ctx, &req); err != nil {
		return badRequest(ctx, err)
	}

	target, actor, err := targetAndActor(req.Target, req.Actor)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewLockItemCommand(orderID, itemID, target, req.Reason, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.lockItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UnlockItem handles POST /api/v1/orders/:order_id/items/:item_id/unlock.
func (s *Server) UnlockItem(ctx echo.Context) error {
	orderID, itemID, err := pathIDs(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req UnlockItemRequest
	if err = bindAndValidate(ctx, &req); err != nil {
		return badRequest(ctx, err)
	}

	actor, err := actorFromRequest(req.Actor)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewUnlockItemCommand(orderID, itemID, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.unlockItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ForceSetItem handles POST /api/v1/orders/:order_id/items/:item_id/force-set.
func (s *Server) ForceSetItem(ctx echo.Context) error {
	orderID, itemID, err := pathIDs(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req ForceSetItemRequest
	if err = bindAndValidate(ctx, &req); err != nil {
		return badRequest(ctx, err)
	}

	target, actor, err := targetAndActor(req.Target, req.Actor)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewForceSetItemCommand(orderID, itemID, target, req.Reason, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.forceSetItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelItem handles POST /api/v1/orders/:order_id/items/:item_id/cancel.
func (s *Server) CancelItem(ctx echo.Context) error {
	orderID, itemID, err := pathIDs(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req CancelItemRequest
	if err = bindAndValidate(ctx, &req); err != nil {
		return badRequest(ctx, err)
	}

	actor, err := actorFromRequest(req.Actor)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCancelItemCommand(orderID, itemID, req.Reason, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.cancelItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:order_id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("order_id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var req CancelOrderRequest
	if err = bindAndValidate(ctx, &req); err != nil {
		return badRequest(ctx, err)
	}

	actor, err := actorFromRequest(req.Actor)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, req.Reason, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// BulkTransition handles POST /api/v1/items/bulk-transition. Always returns
// 200 with a per-item report; individual failures do not fail the batch.
func (s *Server) BulkTransition(ctx echo.Context) error {
	var req BulkTransitionRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return badRequest(ctx, err)
	}

	refs := make([]commands.BulkItemRef, 0, len(req.Items))
	for _, ref := range req.Items {
		orderID, err := kernel.UUIDFromString(ref.OrderID)
		if err != nil {
			return badRequest(ctx, err)
		}
		itemID, err := kernel.UUIDFromString(ref.ItemID)
		if err != nil {
			return badRequest(ctx, err)
		}
		refs = append(refs, commands.BulkItemRef{OrderID: orderID, ItemID: itemID})
	}

	target, actor, err := targetAndActor(req.Target, req.Actor)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewBulkTransitionCommand(refs, target, actor, req.Note)
	if err != nil {
		return respondError(ctx, err)
	}

	report, err := s.bulkTransitionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, bulkReportResponse(report))
}

// GetOrderSummary handles GET /api/v1/orders/:order_id/summary.
func (s *Server) GetOrderSummary(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("order_id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetOrderSummaryQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	summary, err := s.orderSummaryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderSummaryResponse(summary))
}

// GetAttentionOrders handles GET /api/v1/orders/attention.
func (s *Server) GetAttentionOrders(ctx echo.Context) error {
	rows, err := s.attentionOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetAttentionOrdersQuery())
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]AttentionOrderResponse, 0, len(rows))
	for _, row := range rows {
		response = append(response, AttentionOrderResponse{
			OrderID:           row.OrderID.String(),
			Status:            row.Status,
			Urgency:           row.Urgency,
			NeedsAttention:    row.NeedsAttention,
			CompletionPercent: row.CompletionPercent,
			ActiveItemCount:   row.ActiveItemCount,
			StaleItemCount:    row.StaleItemCount,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// pathIDs parses the order and item identifiers from the route.
func pathIDs(ctx echo.Context) (kernel.UUID, kernel.UUID, error) {
	orderID, err := kernel.UUIDFromString(ctx.Param("order_id"))
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	itemID, err := kernel.UUIDFromString(ctx.Param("item_id"))
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	return orderID, itemID, nil
}

// targetAndActor parses the wire status and actor of a mutation request.
func targetAndActor(rawTarget, rawActor string) (item.Status, item.Actor, error) {
	target, err := item.StatusFromString(rawTarget)
	if err != nil {
		return item.StatusUnknown, item.Actor{}, err
	}
	actor, err := actorFromRequest(rawActor)
	if err != nil {
		return item.StatusUnknown, item.Actor{}, err
	}
	return target, actor, nil
}

// actorFromRequest parses the actor field; a blank actor means the change was
// automated.
func actorFromRequest(raw string) (item.Actor, error) {
	if raw == "" {
		return item.SystemActor(), nil
	}
	return item.ActorFromString(raw)
}

func badRequest(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
	})
}

// respondError maps domain errors onto HTTP status codes: unknown aggregates
// are 404, business-rule rejections are 422, contention (locks, stale
// versions, double cancellation) is 409, and bad values are 400.
func respondError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, item.ErrInvalidTransition):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, item.ErrItemLocked),
		errors.Is(err, errs.ErrVersionIsInvalid),
		errors.Is(err, order.ErrOrderIsCancelled):
		code = http.StatusConflict
	case errors.Is(err, item.ErrReasonRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, ErrorResponse{Code: code, Message: err.Error()})
}

// BulkItemResultResponse is one line of a bulk transition report.
type BulkItemResultResponse struct {
	OrderID string `json:"order_id"`
	ItemID  string `json:"item_id"`
	OK      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
}

// BulkTransitionResponse is the JSON report of a bulk transition.
type BulkTransitionResponse struct {
	Succeeded int                      `json:"succeeded"`
	Failed    int                      `json:"failed"`
	Results   []BulkItemResultResponse `json:"results"`
}

func bulkReportResponse(report commands.BulkTransitionReport) BulkTransitionResponse {
	resp := BulkTransitionResponse{
		Succeeded: report.Succeeded(),
		Failed:    report.Failed(),
		Results:   make([]BulkItemResultResponse, 0, len(report.Results)),
	}
	for _, res := range report.Results {
		line := BulkItemResultResponse{
			OrderID: res.Ref.OrderID.String(),
			ItemID:  res.Ref.ItemID.String(),
			OK:      res.Err == nil,
		}
		if res.Err != nil {
			line.Error = res.Err.Error()
		}
		resp.Results = append(resp.Results, line)
	}
	return resp
}

// ItemSummaryJSON is the per-item line of the order summary payload.
type ItemSummaryJSON struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Status      string          `json:"status"`
	StatusLabel string          `json:"status_label"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
	Locked      bool            `json:"locked"`
	LockReason  string          `json:"lock_reason,omitempty"`
	Cancelled   bool            `json:"cancelled"`
	Stale       bool            `json:"stale"`
	Version     int             `json:"version"`
}

// OrderSummaryResponse is the JSON shape of the order dashboard view.
type OrderSummaryResponse struct {
	OrderID             string            `json:"order_id"`
	Status              string            `json:"status"`
	LegacyStatusLabel   string            `json:"legacy_status_label,omitempty"`
	PaymentStatus       string            `json:"payment_status"`
	PaymentStatusLabel  string            `json:"payment_status_label"`
	CompletionPercent   int               `json:"completion_percent"`
	ActiveTotal         decimal.Decimal   `json:"active_total"`
	NeedsAttention      bool              `json:"needs_attention"`
	Urgency             string            `json:"urgency"`
	MeetsMinimum        bool              `json:"meets_minimum"`
	AmountDeficit       decimal.Decimal   `json:"amount_deficit"`
	CountDeficit        int               `json:"count_deficit"`
	Items               []ItemSummaryJSON `json:"items"`
	LastTimelineMessage string            `json:"last_timeline_message,omitempty"`
	GeneratedAt         time.Time         `json:"generated_at"`
}

// AttentionOrderResponse is one row of the attention dashboard payload.
type AttentionOrderResponse struct {
	OrderID           string `json:"order_id"`
	Status            string `json:"status"`
	Urgency           string `json:"urgency"`
	NeedsAttention    bool   `json:"needs_attention"`
	CompletionPercent int    `json:"completion_percent"`
	ActiveItemCount   int    `json:"active_item_count"`
	StaleItemCount    int    `json:"stale_item_count"`
}

func orderSummaryResponse(summary queries.GetOrderSummaryQueryResponse) OrderSummaryResponse {
	resp := OrderSummaryResponse{
		OrderID:             summary.OrderID.String(),
		Status:              summary.Status,
		LegacyStatusLabel:   summary.LegacyStatusLabel,
		PaymentStatus:       summary.PaymentStatus,
		PaymentStatusLabel:  summary.PaymentStatusLabel,
		CompletionPercent:   summary.CompletionPercent,
		ActiveTotal:         summary.ActiveTotal,
		NeedsAttention:      summary.NeedsAttention,
		Urgency:             summary.Urgency,
		MeetsMinimum:        summary.MeetsMinimum,
		AmountDeficit:       summary.AmountDeficit,
		CountDeficit:        summary.CountDeficit,
		Items:               make([]ItemSummaryJSON, 0, len(summary.Items)),
		LastTimelineMessage: summary.LastTimelineMessage,
		GeneratedAt:         summary.GeneratedAt,
	}
	for _, line := range summary.Items {
		resp.Items = append(resp.Items, ItemSummaryJSON{
			ID:          line.ID.String(),
			Name:        line.Name,
			Status:      line.Status,
			StatusLabel: line.StatusLabel,
			Quantity:    line.Quantity,
			LineTotal:   line.LineTotal,
			Locked:      line.Locked,
			LockReason:  line.LockReason,
			Cancelled:   line.Cancelled,
			Stale:       line.Stale,
			Version:     line.Version,
		})
	}
	return resp
}
