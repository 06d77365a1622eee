package http

import (
	"log/slog"
	"net/http"

	"foodtruck/internal/core/application/usecases/commands"
	"foodtruck/internal/core/application/usecases/queries"
	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/core/domain/model/order"
	"foodtruck/internal/core/ports"
	"foodtruck/internal/generated/servers"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

var _ servers.ServerInterface = (*Server)(nil)

// CommandHandlers groups the write use cases served over HTTP.
type CommandHandlers struct {
	CreateOrder       commands.CreateOrderCommandHandler
	ChangeOrderStatus commands.ChangeOrderStatusCommandHandler
	RateOrder         commands.RateOrderCommandHandler
	DeleteOrder       commands.DeleteOrderCommandHandler
	CreateProduct     commands.CreateProductCommandHandler
	UpdateProduct     commands.UpdateProductCommandHandler
}

// QueryHandlers groups the read use cases served over HTTP.
type QueryHandlers struct {
	GetOrder        queries.GetOrderQueryHandler
	GetActiveOrders queries.GetActiveOrdersQueryHandler
	GetTransitions  queries.GetTransitionTableQueryHandler
	ListProducts    queries.ListProductsQueryHandler
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	commands CommandHandlers
	queries  QueryHandlers

	identity ports.Identity
	metrics  *Metrics
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	commandHandlers CommandHandlers,
	queryHandlers QueryHandlers,
	identity ports.Identity,
	metrics *Metrics,
	logger *slog.Logger,
) *Server {
	return &Server{
		commands: commandHandlers,
		queries:  queryHandlers,
		identity: identity,
		metrics:  metrics,
		logger:   logger.With("component", "http_server"),
	}
}

// CreateOrder handles POST /api/v1/orders - places an order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.NewOrder
	if err := ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	lines := make([]commands.OrderLine, 0, len(body.Items))
	for _, item := range body.Items {
		productID, err := kernel.UUIDFromBytes(item.ProductId[:])
		if err != nil {
			return s.problem(ctx, err)
		}
		lines = append(lines, commands.OrderLine{ProductID: productID, Quantity: item.Quantity})
	}

	var notes string
	if body.Notes != nil {
		notes = *body.Notes
	}

	cmd, err := commands.NewCreateOrderCommand(lines, notes)
	if err != nil {
		s.metrics.RecordOrderOperation("create", false)
		return s.problem(ctx, err)
	}

	created, err := s.commands.CreateOrder.Handle(ctx.Request().Context(), cmd)
	s.metrics.RecordOrderOperation("create", err == nil)
	if err != nil {
		return s.problem(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toOrder(queries.NewOrderResponse(created)))
}

// GetActiveOrders handles GET /api/v1/orders/active - the kitchen board.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	orders, err := s.queries.GetActiveOrders.Handle(ctx.Request().Context(), queries.NewGetActiveOrdersQuery())
	if err != nil {
		return s.problem(ctx, err)
	}

	response := make([]servers.Order, len(orders))
	for i, o := range orders {
		response[i] = toOrder(o)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId servers.OrderId) error {
	id, err := kernel.ULIDFromString(orderId)
	if err != nil {
		return s.problem(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.problem(ctx, err)
	}

	o, err := s.queries.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.problem(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrder(o))
}

// DeleteOrder handles DELETE /api/v1/orders/{orderId} - removes a pending order.
func (s *Server) DeleteOrder(ctx echo.Context, orderId servers.OrderId) error {
	id, err := kernel.ULIDFromString(orderId)
	if err != nil {
		return s.problem(ctx, err)
	}

	cmd, err := commands.NewDeleteOrderCommand(id)
	if err != nil {
		return s.problem(ctx, err)
	}

	err = s.commands.DeleteOrder.Handle(ctx.Request().Context(), cmd)
	s.metrics.RecordOrderOperation("delete", err == nil)
	if err != nil {
		return s.problem(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ChangeOrderStatus handles PATCH /api/v1/orders/{orderId}/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context, orderId servers.OrderId) error {
	var body servers.StatusChange
	if err := ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	id, err := kernel.ULIDFromString(orderId)
	if err != nil {
		return s.problem(ctx, err)
	}

	status, err := order.ParseStatus(body.Status)
	if err != nil {
		return s.problem(ctx, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(id, status)
	if err != nil {
		return s.problem(ctx, err)
	}

	changed, err := s.commands.ChangeOrderStatus.Handle(ctx.Request().Context(), cmd)
	s.metrics.RecordOrderOperation("change_status", err == nil)
	if err != nil {
		return s.problem(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrder(queries.NewOrderResponse(changed)))
}

// RateOrder handles PUT /api/v1/orders/{orderId}/rating.
func (s *Server) RateOrder(ctx echo.Context, orderId servers.OrderId) error {
	var body servers.RatingRequest
	if err := ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	id, err := kernel.ULIDFromString(orderId)
	if err != nil {
		return s.problem(ctx, err)
	}

	var comment string
	if body.Comment != nil {
		comment = *body.Comment
	}

	cmd, err := commands.NewRateOrderCommand(id, body.Rating, comment)
	if err != nil {
		s.metrics.RecordOrderOperation("rate", false)
		return s.problem(ctx, err)
	}

	rated, err := s.commands.RateOrder.Handle(ctx.Request().Context(), cmd)
	s.metrics.RecordOrderOperation("rate", err == nil)
	if err != nil {
		return s.problem(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrder(queries.NewOrderResponse(rated)))
}

// ListProducts handles GET /api/v1/products.
func (s *Server) ListProducts(ctx echo.Context) error {
	products, err := s.queries.ListProducts.Handle(ctx.Request().Context(), queries.NewListProductsQuery())
	if err != nil {
		return s.problem(ctx, err)
	}

	response := make([]servers.Product, len(products))
	for i, p := range products {
		response[i] = toProduct(p)
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateProduct handles POST /api/v1/products.
func (s *Server) CreateProduct(ctx echo.Context) error {
	var body servers.NewProduct
	if err := ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	price, err := kernel.MoneyFromString(body.Price)
	if err != nil {
		return s.problem(ctx, err)
	}

	cmd, err := commands.NewCreateProductCommand(body.Name, price)
	if err != nil {
		return s.problem(ctx, err)
	}

	created, err := s.commands.CreateProduct.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.problem(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toProduct(queries.NewProductResponse(created)))
}

// UpdateProduct handles PATCH /api/v1/products/{productId}.
func (s *Server) UpdateProduct(ctx echo.Context, productId openapi_types.UUID) error {
	var body servers.ProductPatch
	if err := ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	id, err := kernel.UUIDFromBytes(productId[:])
	if err != nil {
		return s.problem(ctx, err)
	}

	changes := commands.ProductChanges{Name: body.Name, Available: body.Available}
	if body.Price != nil {
		price, priceErr := kernel.MoneyFromString(*body.Price)
		if priceErr != nil {
			return s.problem(ctx, priceErr)
		}
		changes.Price = &price
	}

	cmd, err := commands.NewUpdateProductCommand(id, changes)
	if err != nil {
		return s.problem(ctx, err)
	}

	updated, err := s.commands.UpdateProduct.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.problem(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toProduct(queries.NewProductResponse(updated)))
}

// GetTransitions handles GET /api/v1/transitions - the status workflow,
// narrowed to the edges one role may take when role is given.
func (s *Server) GetTransitions(ctx echo.Context, params servers.GetTransitionsParams) error {
	query := queries.NewGetTransitionTableQuery()
	if params.Role != nil {
		role, err := kernel.ParseRole(string(*params.Role))
		if err != nil {
			return s.problem(ctx, err)
		}
		query = queries.NewGetTransitionTableQueryForRole(role)
	}

	entries, err := s.queries.GetTransitions.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.problem(ctx, err)
	}

	response := make([]servers.TransitionEntry, len(entries))
	for i, entry := range entries {
		to := make([]servers.Status, len(entry.To))
		for j, next := range entry.To {
			to[j] = servers.Status(next.String())
		}
		response[i] = servers.TransitionEntry{
			From:     servers.Status(entry.From.String()),
			To:       to,
			Terminal: entry.Terminal,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

func toOrder(o queries.OrderResponse) servers.Order {
	items := make([]servers.OrderItem, len(o.Items))
	for i, item := range o.Items {
		items[i] = servers.OrderItem{
			ProductId: item.ProductID.Bytes(),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.String(),
			Subtotal:  item.Subtotal.String(),
		}
	}

	response := servers.Order{
		Id:        o.ID.String(),
		Locator:   o.Locator,
		Status:    servers.Status(o.Status.String()),
		Items:     items,
		Rating:    o.Rating,
		Total:     o.Total.String(),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
	if o.Notes != "" {
		notes := o.Notes
		response.Notes = &notes
	}
	if o.RatingComment != "" {
		comment := o.RatingComment
		response.RatingComment = &comment
	}
	return response
}

func toProduct(p queries.ProductResponse) servers.Product {
	return servers.Product{
		Id:        p.ID.Bytes(),
		Name:      p.Name,
		Price:     p.Price.String(),
		Available: p.Available,
	}
}
