package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/microservices-console/internal/application"
	"github.com/oksasatya/microservices-console/internal/domain/entity"
	"github.com/oksasatya/microservices-console/internal/interface/middleware"
	"github.com/oksasatya/microservices-console/internal/interface/view"
	"github.com/oksasatya/microservices-console/internal/session"
	"github.com/oksasatya/microservices-console/pkg/helpers"
)

type mockUsers struct{ mock.Mock }

func (m *mockUsers) List(ctx context.Context) ([]entity.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.User), args.Error(1)
}

func (m *mockUsers) Create(ctx context.Context, u entity.NewUser) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUsers) Delete(ctx context.Context, id entity.ID) error {
	return m.Called(ctx, id).Error(0)
}

type mockProducts struct{ mock.Mock }

func (m *mockProducts) List(ctx context.Context) ([]entity.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *mockProducts) Create(ctx context.Context, p entity.NewProduct) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProducts) Delete(ctx context.Context, id entity.ID) error {
	return m.Called(ctx, id).Error(0)
}

type testApp struct {
	engine   *gin.Engine
	users    *mockUsers
	products *mockProducts
	board    *application.StatusBoard
	sessions *session.Store
	cookie   *http.Cookie
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	users := new(mockUsers)
	products := new(mockProducts)
	board := application.NewStatusBoard()
	deps := application.Dependencies{
		Users:    users,
		Products: products,
		Health:   application.NewHealthChecker(nil, board, nil, quiet),
		Logger:   quiet,
	}
	store := session.NewStore(deps, time.Minute, 50, quiet)
	renderer, err := view.NewRenderer()
	require.NoError(t, err)

	ui := NewUIHandler(renderer, quiet, "Console", 30*time.Second)
	status := NewStatusHandler(board, renderer)

	r := gin.New()
	r.GET("/health", Health)
	r.GET("/fragments/status", status.Fragment)
	r.GET("/api/status", status.JSON)
	g := r.Group("/", middleware.Session(store, helpers.NewCookie("", false)))
	g.GET("/", ui.Index)
	g.GET("/tabs/:name", ui.ShowTab)
	g.POST("/users", ui.SubmitUser)
	g.POST("/products", ui.SubmitProduct)
	g.GET("/users/:id/delete", ui.ConfirmDeleteUser)
	g.POST("/users/:id/delete", ui.DeleteUser)
	g.GET("/products/:id/delete", ui.ConfirmDeleteProduct)
	g.POST("/products/:id/delete", ui.DeleteProduct)
	g.GET("/fragments/users", ui.UsersFragment)
	g.GET("/fragments/products", ui.ProductsFragment)

	// a browser that already holds its cookie; the first request opens the session
	cookie := &http.Cookie{Name: helpers.SessionCookie, Value: session.NewID()}
	return &testApp{engine: r, users: users, products: products, board: board, sessions: store, cookie: cookie}
}

func (a *testApp) do(t *testing.T, method, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if a.cookie != nil {
		req.AddCookie(a.cookie)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.Name == helpers.SessionCookie {
			a.cookie = ck
		}
	}
	return w
}

func TestIndexLoadsUsersOnFirstVisit(t *testing.T) {
	app := newTestApp(t)
	app.users.On("List", mock.Anything).Return([]entity.User{{ID: "1", Name: "Ada", Email: "ada@x.io"}}, nil).Once()

	w := app.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "<h3>Ada</h3>")
	assert.NotContains(t, w.Body.String(), "tab-content active")
	require.NotNil(t, app.cookie)

	// second visit reuses the session without reloading
	w = app.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	app.users.AssertExpectations(t)
}

func TestFirstVisitWithoutCookie(t *testing.T) {
	app := newTestApp(t)
	app.cookie = nil
	app.users.On("List", mock.Anything).Return([]entity.User{{ID: "1", Name: "Ada"}}, nil).Once()

	w := app.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `data-pending="/fragments/users"`)
	assert.NotContains(t, w.Body.String(), "<h3>Ada</h3>")
	require.NotNil(t, app.cookie)
	assert.Zero(t, app.sessions.Len())
	app.users.AssertNotCalled(t, "List", mock.Anything)

	// the page script asks for the list once the cookie is set
	w = app.do(t, http.MethodGet, "/fragments/users", nil)
	assert.Contains(t, w.Body.String(), "<h3>Ada</h3>")
	assert.NotContains(t, w.Body.String(), "data-pending")

	w = app.do(t, http.MethodGet, "/", nil)
	assert.Contains(t, w.Body.String(), "<h3>Ada</h3>")
	assert.Equal(t, 1, app.sessions.Len())
	app.users.AssertNumberOfCalls(t, "List", 1)
}

func TestCookielessRequestsOpenNoSessions(t *testing.T) {
	app := newTestApp(t)

	for i := 0; i < 300; i++ {
		app.cookie = nil
		w := app.do(t, http.MethodGet, "/", nil)
		require.Equal(t, http.StatusOK, w.Code)
	}
	assert.Zero(t, app.sessions.Len())
	app.users.AssertNotCalled(t, "List", mock.Anything)
}

func TestShowTab(t *testing.T) {
	app := newTestApp(t)
	app.users.On("List", mock.Anything).Return([]entity.User{}, nil)
	app.products.On("List", mock.Anything).Return([]entity.Product{}, nil).Once()

	w := app.do(t, http.MethodGet, "/tabs/products", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = app.do(t, http.MethodGet, "/", nil)
	assert.Contains(t, w.Body.String(), `id="products-tab" class="tab-content active"`)
	assert.Contains(t, w.Body.String(), "No products found")

	w = app.do(t, http.MethodGet, "/tabs/orders", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `id="products-tab" class="tab-content active"`)
	app.products.AssertExpectations(t)
}

func TestSubmitUserFailureShowsAlertOnce(t *testing.T) {
	app := newTestApp(t)
	app.users.On("List", mock.Anything).Return([]entity.User{}, nil)
	app.users.On("Create", mock.Anything, entity.NewUser{Name: "Ada", Email: "ada@x.io"}).Return(errors.New("boom"))

	w := app.do(t, http.MethodPost, "/users", url.Values{"name": {"Ada"}, "email": {"ada@x.io"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)

	w = app.do(t, http.MethodGet, "/", nil)
	assert.Contains(t, w.Body.String(), "Failed to add user")
	assert.Contains(t, w.Body.String(), `value="Ada"`)

	w = app.do(t, http.MethodGet, "/", nil)
	assert.NotContains(t, w.Body.String(), "Failed to add user")
}

func TestSubmitProductForwardsRawPrice(t *testing.T) {
	app := newTestApp(t)
	app.users.On("List", mock.Anything).Return([]entity.User{}, nil)
	app.products.On("Create", mock.Anything, entity.NewProduct{Name: "Lamp", Description: "Desk", Price: "19.5"}).Return(nil).Once()
	app.products.On("List", mock.Anything).Return([]entity.Product{{ID: "7", Name: "Lamp"}}, nil).Once()

	w := app.do(t, http.MethodPost, "/products", url.Values{"name": {"Lamp"}, "description": {"Desk"}, "price": {"19.5"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	app.products.AssertExpectations(t)
}

func TestDeleteFlow(t *testing.T) {
	app := newTestApp(t)
	app.users.On("List", mock.Anything).Return([]entity.User{{ID: "1", Name: "Ada"}}, nil)

	w := app.do(t, http.MethodGet, "/users/1/delete", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Delete this user?")
	assert.Contains(t, w.Body.String(), `action="/users/1/delete"`)

	// declined: no confirm field, no request
	w = app.do(t, http.MethodPost, "/users/1/delete", url.Values{})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	app.users.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)

	app.users.On("Delete", mock.Anything, entity.ID("1")).Return(nil).Once()
	w = app.do(t, http.MethodPost, "/users/1/delete", url.Values{"confirm": {"yes"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	app.users.AssertCalled(t, "Delete", mock.Anything, entity.ID("1"))
}

func TestDeleteProductFailureAlerts(t *testing.T) {
	app := newTestApp(t)
	app.users.On("List", mock.Anything).Return([]entity.User{}, nil)
	app.products.On("Delete", mock.Anything, entity.ID("9")).Return(errors.New("404"))

	app.do(t, http.MethodPost, "/products/9/delete", url.Values{"confirm": {"yes"}})
	w := app.do(t, http.MethodGet, "/", nil)
	assert.Contains(t, w.Body.String(), "Failed to delete product")
	app.products.AssertNotCalled(t, "List", mock.Anything)
}

func TestFragments(t *testing.T) {
	app := newTestApp(t)
	app.users.On("List", mock.Anything).Return(nil, errors.New("down"))

	w := app.do(t, http.MethodGet, "/fragments/users", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to load users")
	assert.NotContains(t, w.Body.String(), "<html")
}

func TestStatusEndpoints(t *testing.T) {
	app := newTestApp(t)
	app.board.Set(entity.UserService, entity.StatusHealthy, time.Now())
	app.board.Set(entity.ProductService, entity.StatusDown, time.Now())

	w := app.do(t, http.MethodGet, "/fragments/status", nil)
	assert.Contains(t, w.Body.String(), "✅ Healthy")
	assert.Contains(t, w.Body.String(), "❌ Down")
	assert.Empty(t, w.Result().Cookies())
	assert.Zero(t, app.sessions.Len())

	w = app.do(t, http.MethodGet, "/api/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Success bool               `json:"success"`
		Data    []entity.Indicator `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Data, 2)
	assert.Equal(t, entity.StatusHealthy, body.Data[0].Status)
	assert.Equal(t, entity.StatusDown, body.Data[1].Status)
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	w := app.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestPollIntervalNeverZero(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want int
	}{
		{30 * time.Second, 30000},
		{250 * time.Millisecond, 250},
		{500 * time.Microsecond, 1},
		{0, 1},
	}
	for _, tt := range tests {
		h := NewUIHandler(nil, nil, "Console", tt.in)
		assert.Equal(t, tt.want, h.PollIntervalMs, tt.in.String())
	}
}

func TestPageScriptUsesMilliseconds(t *testing.T) {
	app := newTestApp(t)
	app.users.On("List", mock.Anything).Return([]entity.User{}, nil)

	w := app.do(t, http.MethodGet, "/", nil)
	assert.Regexp(t, `},\s*30000\s*\);`, w.Body.String())
}
