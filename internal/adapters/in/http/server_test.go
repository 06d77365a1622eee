package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"foodtruck/internal/adapters/out/memory"
	"foodtruck/internal/core/application/usecases/commands"
	"foodtruck/internal/core/application/usecases/queries"
	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/core/domain/services"
	"foodtruck/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type orderUoWFactory struct{ factory *memory.UnitOfWorkFactory }

func (f orderUoWFactory) Create() commands.OrderUoW { return f.factory.Create() }

type productUoWFactory struct{ factory *memory.UnitOfWorkFactory }

func (f productUoWFactory) Create() commands.ProductUoW { return f.factory.Create() }

type apiFixture struct {
	t     *testing.T
	e     *echo.Echo
	auth  TokenAuthenticator
	store *memory.Store
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	store := memory.NewStore()
	factory := memory.NewUnitOfWorkFactory(store)
	identity := NewContextIdentity()
	policy := services.NewTransitionPolicy()
	orders := orderUoWFactory{factory: factory}
	catalog := productUoWFactory{factory: factory}

	metrics := NewMetrics(prometheus.NewRegistry())
	server := NewServer(
		CommandHandlers{
			CreateOrder: commands.NewCreateOrderCommandHandler(
				orders, identity, policy, services.NewLocatorGenerator(nil), logger),
			ChangeOrderStatus: commands.NewChangeOrderStatusCommandHandler(orders, identity, policy, logger),
			RateOrder:         commands.NewRateOrderCommandHandler(orders, identity, policy, logger),
			DeleteOrder:       commands.NewDeleteOrderCommandHandler(orders, identity, policy, logger),
			CreateProduct:     commands.NewCreateProductCommandHandler(catalog, identity, policy, logger),
			UpdateProduct:     commands.NewUpdateProductCommandHandler(catalog, identity, policy, logger),
		},
		QueryHandlers{
			GetOrder:        queries.NewGetOrderQueryHandler(store),
			GetActiveOrders: queries.NewGetActiveOrdersQueryHandler(store, identity, policy),
			GetTransitions:  queries.NewGetTransitionTableQueryHandler(policy),
			ListProducts:    queries.NewListProductsQueryHandler(factory.Create().ProductRepository(), identity, policy),
		},
		identity,
		metrics,
		logger,
	)

	auth, err := NewTokenAuthenticator(testSecret)
	require.NoError(t, err)

	e, err := NewEcho(server, auth, metrics, logger)
	require.NoError(t, err)

	return &apiFixture{t: t, e: e, auth: auth, store: store}
}

func (f *apiFixture) token(role kernel.Role) string {
	f.t.Helper()
	token, err := f.auth.Issue("staff-1", role, time.Hour)
	require.NoError(f.t, err)
	return token
}

func (f *apiFixture) do(method, path string, role kernel.Role, body any) *httptest.ResponseRecorder {
	f.t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(f.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if role != kernel.RoleNone {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+f.token(role))
	}

	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func (f *apiFixture) createProduct(name, price string) servers.Product {
	f.t.Helper()
	rec := f.do(http.MethodPost, "/api/v1/products", kernel.RoleAdmin, servers.NewProduct{Name: name, Price: price})
	require.Equal(f.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[servers.Product](f.t, rec)
}

func (f *apiFixture) createOrder(items ...servers.NewOrderItem) servers.Order {
	f.t.Helper()
	rec := f.do(http.MethodPost, "/api/v1/orders", kernel.RoleAttendant, servers.NewOrder{Items: items})
	require.Equal(f.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[servers.Order](f.t, rec)
}

func (f *apiFixture) changeStatus(id string, role kernel.Role, status string) *httptest.ResponseRecorder {
	f.t.Helper()
	return f.do(http.MethodPatch, "/api/v1/orders/"+id+"/status", role, servers.StatusChange{Status: status})
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func assertError(t *testing.T, rec *httptest.ResponseRecorder, code int) {
	t.Helper()
	require.Equal(t, code, rec.Code, rec.Body.String())
	problem := decode[servers.Error](t, rec)
	assert.Equal(t, code, problem.Code)
	assert.NotEmpty(t, problem.Message)
}

func TestHealth(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(http.MethodGet, "/health", kernel.RoleNone, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestCreateOrder(t *testing.T) {
	f := newAPIFixture(t)
	burger := f.createProduct("Burger", "10.00")
	fries := f.createProduct("Fries", "5.00")

	t.Run("computes total and assigns locator", func(t *testing.T) {
		created := f.createOrder(
			servers.NewOrderItem{ProductId: burger.Id, Quantity: 2},
			servers.NewOrderItem{ProductId: fries.Id, Quantity: 1},
		)

		assert.Equal(t, "25.00", created.Total)
		assert.Equal(t, servers.PENDING, created.Status)
		assert.Regexp(t, `^[A-Z][0-9]{3}$`, created.Locator)
		require.Len(t, created.Items, 2)
		assert.Equal(t, "20.00", created.Items[0].Subtotal)
		assert.Equal(t, "10.00", created.Items[0].UnitPrice)

		rec := f.do(http.MethodGet, "/api/v1/orders/"+created.Id, kernel.RoleKitchen, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, created.Locator, decode[servers.Order](t, rec).Locator)
	})

	t.Run("requires identity", func(t *testing.T) {
		rec := f.do(http.MethodPost, "/api/v1/orders", kernel.RoleNone, servers.NewOrder{
			Items: []servers.NewOrderItem{{ProductId: burger.Id, Quantity: 1}},
		})
		assertError(t, rec, http.StatusUnauthorized)
	})

	t.Run("kitchen may not take orders", func(t *testing.T) {
		rec := f.do(http.MethodPost, "/api/v1/orders", kernel.RoleKitchen, servers.NewOrder{
			Items: []servers.NewOrderItem{{ProductId: burger.Id, Quantity: 1}},
		})
		assertError(t, rec, http.StatusForbidden)
	})

	t.Run("rejects invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/active", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-token")
		rec := httptest.NewRecorder()
		f.e.ServeHTTP(rec, req)

		assertError(t, rec, http.StatusUnauthorized)
	})

	t.Run("unprocessable orders persist nothing", func(t *testing.T) {
		before := f.do(http.MethodGet, "/api/v1/orders/active", kernel.RoleAdmin, nil)
		require.Equal(t, http.StatusOK, before.Code)
		active := len(decode[[]servers.Order](t, before))

		cases := map[string][]servers.NewOrderItem{
			"empty":           {},
			"zero quantity":   {{ProductId: burger.Id, Quantity: 0}},
			"unknown product": {{ProductId: kernel.NewUUID().Bytes(), Quantity: 1}},
		}
		for name, items := range cases {
			t.Run(name, func(t *testing.T) {
				rec := f.do(http.MethodPost, "/api/v1/orders", kernel.RoleAttendant, servers.NewOrder{Items: items})
				assertError(t, rec, http.StatusUnprocessableEntity)
			})
		}

		after := f.do(http.MethodGet, "/api/v1/orders/active", kernel.RoleAdmin, nil)
		assert.Len(t, decode[[]servers.Order](t, after), active)
	})

	t.Run("unavailable product", func(t *testing.T) {
		soldOut := f.createProduct("Churros", "4.00")
		unavailable := false
		rec := f.do(http.MethodPatch, "/api/v1/products/"+soldOut.Id.String(), kernel.RoleAdmin,
			servers.ProductPatch{Available: &unavailable})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.False(t, decode[servers.Product](t, rec).Available)

		rec = f.do(http.MethodPost, "/api/v1/orders", kernel.RoleAttendant, servers.NewOrder{
			Items: []servers.NewOrderItem{{ProductId: soldOut.Id, Quantity: 1}},
		})
		assertError(t, rec, http.StatusUnprocessableEntity)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := f.do(http.MethodPost, "/api/v1/orders", kernel.RoleAttendant, `{"items": "burger"}`)
		assertError(t, rec, http.StatusBadRequest)
	})
}

func TestChangeOrderStatus(t *testing.T) {
	f := newAPIFixture(t)
	taco := f.createProduct("Taco", "3.50")

	t.Run("follows the workflow", func(t *testing.T) {
		created := f.createOrder(servers.NewOrderItem{ProductId: taco.Id, Quantity: 2})

		steps := []struct {
			role   kernel.Role
			status string
		}{
			{kernel.RoleKitchen, "PREPARING"},
			{kernel.RoleKitchen, "READY"},
			{kernel.RoleAttendant, "DELIVERED"},
		}
		for _, step := range steps {
			rec := f.changeStatus(created.Id, step.role, step.status)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, servers.Status(step.status), decode[servers.Order](t, rec).Status)
		}

		assertError(t, f.changeStatus(created.Id, kernel.RoleAdmin, "CANCELLED"), http.StatusConflict)
	})

	t.Run("skipping a state conflicts", func(t *testing.T) {
		created := f.createOrder(servers.NewOrderItem{ProductId: taco.Id, Quantity: 1})
		assertError(t, f.changeStatus(created.Id, kernel.RoleAdmin, "DELIVERED"), http.StatusConflict)
		assertError(t, f.changeStatus(created.Id, kernel.RoleAdmin, "PENDING"), http.StatusConflict)
	})

	t.Run("kitchen may not deliver", func(t *testing.T) {
		created := f.createOrder(servers.NewOrderItem{ProductId: taco.Id, Quantity: 1})
		require.Equal(t, http.StatusOK, f.changeStatus(created.Id, kernel.RoleKitchen, "PREPARING").Code)
		require.Equal(t, http.StatusOK, f.changeStatus(created.Id, kernel.RoleKitchen, "READY").Code)

		assertError(t, f.changeStatus(created.Id, kernel.RoleKitchen, "DELIVERED"), http.StatusForbidden)
	})

	t.Run("unknown status", func(t *testing.T) {
		created := f.createOrder(servers.NewOrderItem{ProductId: taco.Id, Quantity: 1})
		assertError(t, f.changeStatus(created.Id, kernel.RoleAdmin, "EATEN"), http.StatusUnprocessableEntity)
	})

	t.Run("unknown order", func(t *testing.T) {
		assertError(t, f.changeStatus(kernel.NewULID().String(), kernel.RoleAdmin, "PREPARING"), http.StatusNotFound)
	})

	t.Run("malformed order id", func(t *testing.T) {
		assertError(t, f.changeStatus("not-an-id", kernel.RoleAdmin, "PREPARING"), http.StatusBadRequest)
	})
}

func TestGetActiveOrders(t *testing.T) {
	f := newAPIFixture(t)
	soda := f.createProduct("Soda", "2.00")
	first := f.createOrder(servers.NewOrderItem{ProductId: soda.Id, Quantity: 1})
	second := f.createOrder(servers.NewOrderItem{ProductId: soda.Id, Quantity: 2})
	cancelled := f.createOrder(servers.NewOrderItem{ProductId: soda.Id, Quantity: 3})
	require.Equal(t, http.StatusOK, f.changeStatus(cancelled.Id, kernel.RoleAttendant, "CANCELLED").Code)

	rec := f.do(http.MethodGet, "/api/v1/orders/active", kernel.RoleKitchen, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	active := decode[[]servers.Order](t, rec)
	require.Len(t, active, 2)
	assert.Equal(t, first.Id, active[0].Id)
	assert.Equal(t, second.Id, active[1].Id)

	assertError(t, f.do(http.MethodGet, "/api/v1/orders/active", kernel.RoleNone, nil), http.StatusUnauthorized)
}

func TestRateOrder(t *testing.T) {
	f := newAPIFixture(t)
	bowl := f.createProduct("Poke bowl", "12.00")
	created := f.createOrder(servers.NewOrderItem{ProductId: bowl.Id, Quantity: 1})
	ratingPath := "/api/v1/orders/" + created.Id + "/rating"
	comment := "great"

	assertError(t, f.do(http.MethodPut, ratingPath, kernel.RoleAttendant, servers.RatingRequest{Rating: 5}),
		http.StatusConflict)

	for _, status := range []string{"PREPARING", "READY", "DELIVERED"} {
		require.Equal(t, http.StatusOK, f.changeStatus(created.Id, kernel.RoleAdmin, status).Code)
	}

	assertError(t, f.do(http.MethodPut, ratingPath, kernel.RoleAttendant, servers.RatingRequest{Rating: 6}),
		http.StatusUnprocessableEntity)
	assertError(t, f.do(http.MethodPut, ratingPath, kernel.RoleKitchen, servers.RatingRequest{Rating: 4}),
		http.StatusForbidden)

	rec := f.do(http.MethodPut, ratingPath, kernel.RoleAttendant, servers.RatingRequest{Rating: 4, Comment: &comment})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rated := decode[servers.Order](t, rec)
	require.NotNil(t, rated.Rating)
	assert.Equal(t, 4, *rated.Rating)
	require.NotNil(t, rated.RatingComment)
	assert.Equal(t, "great", *rated.RatingComment)

	rec = f.do(http.MethodPut, ratingPath, kernel.RoleAttendant, servers.RatingRequest{Rating: 2})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, *decode[servers.Order](t, rec).Rating)
}

func TestDeleteOrder(t *testing.T) {
	f := newAPIFixture(t)
	wrap := f.createProduct("Wrap", "7.25")

	pending := f.createOrder(servers.NewOrderItem{ProductId: wrap.Id, Quantity: 1})
	rec := f.do(http.MethodDelete, "/api/v1/orders/"+pending.Id, kernel.RoleAttendant, nil)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	assertError(t, f.do(http.MethodGet, "/api/v1/orders/"+pending.Id, kernel.RoleAdmin, nil), http.StatusNotFound)

	preparing := f.createOrder(servers.NewOrderItem{ProductId: wrap.Id, Quantity: 1})
	require.Equal(t, http.StatusOK, f.changeStatus(preparing.Id, kernel.RoleKitchen, "PREPARING").Code)
	assertError(t, f.do(http.MethodDelete, "/api/v1/orders/"+preparing.Id, kernel.RoleAdmin, nil), http.StatusConflict)
}

func TestProducts(t *testing.T) {
	f := newAPIFixture(t)

	assertError(t, f.do(http.MethodPost, "/api/v1/products", kernel.RoleAttendant,
		servers.NewProduct{Name: "Nachos", Price: "6.00"}), http.StatusForbidden)
	assertError(t, f.do(http.MethodPost, "/api/v1/products", kernel.RoleAdmin,
		servers.NewProduct{Name: "Nachos", Price: "-1.00"}), http.StatusUnprocessableEntity)
	assertError(t, f.do(http.MethodPost, "/api/v1/products", kernel.RoleAdmin,
		`{"price": "6.00"}`), http.StatusBadRequest)

	nachos := f.createProduct("Nachos", "6.00")
	assert.True(t, nachos.Available)

	price := "6.50"
	rec := f.do(http.MethodPatch, "/api/v1/products/"+nachos.Id.String(), kernel.RoleAdmin,
		servers.ProductPatch{Price: &price})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "6.50", decode[servers.Product](t, rec).Price)

	rec = f.do(http.MethodGet, "/api/v1/products", kernel.RoleKitchen, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listed := decode[[]servers.Product](t, rec)
	require.Len(t, listed, 1)
	assert.Equal(t, "Nachos", listed[0].Name)

	missing := kernel.NewUUID().String()
	assertError(t, f.do(http.MethodPatch, "/api/v1/products/"+missing, kernel.RoleAdmin,
		servers.ProductPatch{Price: &price}), http.StatusNotFound)
}

func TestGetTransitions(t *testing.T) {
	f := newAPIFixture(t)

	t.Run("full table without identity", func(t *testing.T) {
		rec := f.do(http.MethodGet, "/api/v1/transitions", kernel.RoleNone, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		entries := decode[[]servers.TransitionEntry](t, rec)
		require.Len(t, entries, 5)
		assert.Equal(t, servers.PENDING, entries[0].From)
		assert.Equal(t, []servers.Status{servers.PREPARING, servers.CANCELLED}, entries[0].To)
		assert.True(t, entries[3].Terminal)
		assert.Empty(t, entries[4].To)
	})

	t.Run("narrowed to kitchen", func(t *testing.T) {
		rec := f.do(http.MethodGet, "/api/v1/transitions?role=kitchen", kernel.RoleNone, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		entries := decode[[]servers.TransitionEntry](t, rec)
		assert.Equal(t, []servers.Status{servers.PREPARING}, entries[0].To)
		assert.Equal(t, []servers.Status{servers.READY}, entries[1].To)
		assert.Empty(t, entries[2].To)
	})

	t.Run("unknown role", func(t *testing.T) {
		assertError(t, f.do(http.MethodGet, "/api/v1/transitions?role=chef", kernel.RoleNone, nil), http.StatusBadRequest)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	f := newAPIFixture(t)
	burger := f.createProduct("Burger", "10.00")
	f.createOrder(servers.NewOrderItem{ProductId: burger.Id, Quantity: 1})

	rec := f.do(http.MethodGet, "/metrics", kernel.RoleNone, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `foodtruck_order_operations_total{operation="create",status="success"} 1`)
	assert.True(t, strings.Contains(body, fmt.Sprintf(`path="%s"`, "/api/v1/orders")), body)
}

func TestSwaggerDoc(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(http.MethodGet, "/swagger/doc.json", kernel.RoleNone, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/v1/orders/{orderId}/status")
}
