// Package servers provides primitives to interact with the openapi HTTP API.
//
// The types, the ServerInterface and its echo wrapper follow the layout
// oapi-codegen produces for openapi.json, which is embedded and exposed through
// GetSwagger for request validation and the documentation UI.
package servers

import (
	_ "embed"
	"fmt"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const (
	BearerAuthScopes = "bearerAuth.Scopes"
)

// Defines values for Status.
const (
	PENDING   Status = "PENDING"
	PREPARING Status = "PREPARING"
	READY     Status = "READY"
	DELIVERED Status = "DELIVERED"
	CANCELLED Status = "CANCELLED"
)

// Defines values for GetTransitionsParamsRole.
const (
	Admin     GetTransitionsParamsRole = "admin"
	Attendant GetTransitionsParamsRole = "attendant"
	Kitchen   GetTransitionsParamsRole = "kitchen"
)

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Money Decimal amount with two fraction digits
type Money = string

// NewOrder defines model for NewOrder.
type NewOrder struct {
	Items []NewOrderItem `json:"items"`
	Notes *string        `json:"notes,omitempty"`
}

// NewOrderItem defines model for NewOrderItem.
type NewOrderItem struct {
	ProductId openapi_types.UUID `json:"product_id"`
	Quantity  int                `json:"quantity"`
}

// NewProduct defines model for NewProduct.
type NewProduct struct {
	Name  string `json:"name"`
	Price Money  `json:"price"`
}

// Order defines model for Order.
type Order struct {
	CreatedAt     time.Time   `json:"created_at"`
	Id            string      `json:"id"`
	Items         []OrderItem `json:"items"`
	Locator       string      `json:"locator"`
	Notes         *string     `json:"notes,omitempty"`
	Rating        *int        `json:"rating,omitempty"`
	RatingComment *string     `json:"rating_comment,omitempty"`
	Status        Status      `json:"status"`
	Total         Money       `json:"total"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// OrderItem defines model for OrderItem.
type OrderItem struct {
	ProductId openapi_types.UUID `json:"product_id"`
	Quantity  int                `json:"quantity"`
	Subtotal  Money              `json:"subtotal"`
	UnitPrice Money              `json:"unit_price"`
}

// Product defines model for Product.
type Product struct {
	Available bool               `json:"available"`
	Id        openapi_types.UUID `json:"id"`
	Name      string             `json:"name"`
	Price     Money              `json:"price"`
}

// ProductPatch defines model for ProductPatch.
type ProductPatch struct {
	Available *bool   `json:"available,omitempty"`
	Name      *string `json:"name,omitempty"`
	Price     *Money  `json:"price,omitempty"`
}

// RatingRequest defines model for RatingRequest.
type RatingRequest struct {
	Comment *string `json:"comment,omitempty"`
	Rating  int     `json:"rating"`
}

// Status defines model for Status.
type Status string

// StatusChange defines model for StatusChange.
type StatusChange struct {
	Status string `json:"status"`
}

// TransitionEntry defines model for TransitionEntry.
type TransitionEntry struct {
	From     Status   `json:"from"`
	Terminal bool     `json:"terminal"`
	To       []Status `json:"to"`
}

// OrderId defines model for OrderId.
type OrderId = string

// GetTransitionsParams defines parameters for GetTransitions.
type GetTransitionsParams struct {
	Role *GetTransitionsParamsRole `form:"role,omitempty" json:"role,omitempty"`
}

// GetTransitionsParamsRole defines parameters for GetTransitions.
type GetTransitionsParamsRole string

// CreateOrderJSONRequestBody defines body for CreateOrder for application/json ContentType.
type CreateOrderJSONRequestBody = NewOrder

// RateOrderJSONRequestBody defines body for RateOrder for application/json ContentType.
type RateOrderJSONRequestBody = RatingRequest

// ChangeOrderStatusJSONRequestBody defines body for ChangeOrderStatus for application/json ContentType.
type ChangeOrderStatusJSONRequestBody = StatusChange

// CreateProductJSONRequestBody defines body for CreateProduct for application/json ContentType.
type CreateProductJSONRequestBody = NewProduct

// UpdateProductJSONRequestBody defines body for UpdateProduct for application/json ContentType.
type UpdateProductJSONRequestBody = ProductPatch

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Place an order
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// Orders not yet delivered or cancelled, oldest first
	// (GET /api/v1/orders/active)
	GetActiveOrders(ctx echo.Context) error
	// Delete a pending order
	// (DELETE /api/v1/orders/{orderId})
	DeleteOrder(ctx echo.Context, orderId OrderId) error
	// Get one order
	// (GET /api/v1/orders/{orderId})
	GetOrder(ctx echo.Context, orderId OrderId) error
	// Rate a delivered order
	// (PUT /api/v1/orders/{orderId}/rating)
	RateOrder(ctx echo.Context, orderId OrderId) error
	// Move an order along the workflow
	// (PATCH /api/v1/orders/{orderId}/status)
	ChangeOrderStatus(ctx echo.Context, orderId OrderId) error
	// List the catalog
	// (GET /api/v1/products)
	ListProducts(ctx echo.Context) error
	// Add a product to the catalog
	// (POST /api/v1/products)
	CreateProduct(ctx echo.Context) error
	// Change name, price or availability
	// (PATCH /api/v1/products/{productId})
	UpdateProduct(ctx echo.Context, productId openapi_types.UUID) error
	// Status workflow, optionally narrowed to one role
	// (GET /api/v1/transitions)
	GetTransitions(ctx echo.Context, params GetTransitionsParams) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// CreateOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.CreateOrder(ctx)
}

// GetActiveOrders converts echo context to params.
func (w *ServerInterfaceWrapper) GetActiveOrders(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.GetActiveOrders(ctx)
}

// DeleteOrder converts echo context to params.
func (w *ServerInterfaceWrapper) DeleteOrder(ctx echo.Context) error {
	orderId, err := bindOrderId(ctx)
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.DeleteOrder(ctx, orderId)
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderId, err := bindOrderId(ctx)
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.GetOrder(ctx, orderId)
}

// RateOrder converts echo context to params.
func (w *ServerInterfaceWrapper) RateOrder(ctx echo.Context) error {
	orderId, err := bindOrderId(ctx)
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.RateOrder(ctx, orderId)
}

// ChangeOrderStatus converts echo context to params.
func (w *ServerInterfaceWrapper) ChangeOrderStatus(ctx echo.Context) error {
	orderId, err := bindOrderId(ctx)
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.ChangeOrderStatus(ctx, orderId)
}

// ListProducts converts echo context to params.
func (w *ServerInterfaceWrapper) ListProducts(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.ListProducts(ctx)
}

// CreateProduct converts echo context to params.
func (w *ServerInterfaceWrapper) CreateProduct(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.CreateProduct(ctx)
}

// UpdateProduct converts echo context to params.
func (w *ServerInterfaceWrapper) UpdateProduct(ctx echo.Context) error {
	var productId openapi_types.UUID

	err := runtime.BindStyledParameterWithOptions("simple", "productId", ctx.Param("productId"), &productId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter productId: %s", err))
	}

	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.UpdateProduct(ctx, productId)
}

// GetTransitions converts echo context to params.
func (w *ServerInterfaceWrapper) GetTransitions(ctx echo.Context) error {
	var params GetTransitionsParams

	err := runtime.BindQueryParameter("form", true, false, "role", ctx.QueryParams(), &params.Role)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter role: %s", err))
	}

	return w.Handler.GetTransitions(ctx, params)
}

func bindOrderId(ctx echo.Context) (OrderId, error) {
	var orderId OrderId

	err := runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}
	return orderId, nil
}

// EchoRouter is the subset of echo.Echo and echo.Group used to register handlers.
type EchoRouter interface {
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers, and prepends BaseURL to the paths,
// so that the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/api/v1/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/api/v1/orders/active", wrapper.GetActiveOrders)
	router.DELETE(baseURL+"/api/v1/orders/:orderId", wrapper.DeleteOrder)
	router.GET(baseURL+"/api/v1/orders/:orderId", wrapper.GetOrder)
	router.PUT(baseURL+"/api/v1/orders/:orderId/rating", wrapper.RateOrder)
	router.PATCH(baseURL+"/api/v1/orders/:orderId/status", wrapper.ChangeOrderStatus)
	router.GET(baseURL+"/api/v1/products", wrapper.ListProducts)
	router.POST(baseURL+"/api/v1/products", wrapper.CreateProduct)
	router.PATCH(baseURL+"/api/v1/products/:productId", wrapper.UpdateProduct)
	router.GET(baseURL+"/api/v1/transitions", wrapper.GetTransitions)
}

//go:embed openapi.json
var swaggerSpec []byte

// RawSpec returns the embedded OpenAPI document.
func RawSpec() []byte {
	return swaggerSpec
}

// GetSwagger returns the OpenAPI document corresponding to the generated code
// in this file.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	swagger, err := loader.LoadFromData(swaggerSpec)
	if err != nil {
		return nil, fmt.Errorf("error loading Swagger: %w", err)
	}
	return swagger, nil
}
