package routes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/bizhub-api/internal/application/service"
	"github.com/sangkips/bizhub-api/internal/config"
	"github.com/sangkips/bizhub-api/internal/infrastructure/repository"
	"github.com/sangkips/bizhub-api/internal/infrastructure/storage"
	"github.com/sangkips/bizhub-api/internal/presentation/http/handler"
	"github.com/sangkips/bizhub-api/internal/presentation/http/routes"
	"github.com/sangkips/bizhub-api/internal/testutil"
	"github.com/sangkips/bizhub-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type apiClient struct {
	t      *testing.T
	router http.Handler
	token  string
}

func (a *apiClient) do(method, path string, body interface{}, headers map[string]string) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	db := testutil.NewDB(t)
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	cfg := &config.Config{
		App:       config.AppConfig{Name: "bizhub-test", FrontendURL: "http://app.test"},
		RateLimit: config.RateLimitConfig{Requests: 1000, Duration: 1, Burst: 1000},
	}
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)

	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	businessRepo := repository.NewBusinessRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	leadRepo := repository.NewLeadRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	complianceRepo := repository.NewComplianceDocumentRepository(db)

	authService := service.NewAuthService(userRepo, roleRepo, businessRepo,
		repository.NewPasswordResetTokenRepository(db), jwtManager, nil, nil)
	websiteService := service.NewWebsiteService(repository.NewWebsiteRepository(db), businessRepo)
	saleService := service.NewSaleService(repository.NewSaleRepository(db), customerRepo, businessRepo)
	fileService := service.NewFileService(store, jwtManager, "http://api.test", time.Minute)
	complianceService := service.NewComplianceService(complianceRepo, businessRepo, store, fileService)

	handlers := &routes.Handlers{
		Auth:       handler.NewAuthHandler(authService, cfg.App.FrontendURL, false),
		Business:   handler.NewBusinessHandler(service.NewBusinessService(businessRepo, userRepo, websiteService)),
		Lead:       handler.NewLeadHandler(service.NewLeadService(leadRepo), 1<<20),
		Customer:   handler.NewCustomerHandler(service.NewCustomerService(customerRepo)),
		Sale:       handler.NewSaleHandler(saleService),
		Quote:      handler.NewQuoteHandler(service.NewQuoteService(repository.NewQuoteRepository(db), customerRepo, businessRepo, saleService)),
		Task:       handler.NewTaskHandler(service.NewTaskService(repository.NewTaskRepository(db), leadRepo, customerRepo)),
		Compliance: handler.NewComplianceHandler(complianceService, 1<<20),
		File:       handler.NewFileHandler(fileService),
		Website:    handler.NewWebsiteHandler(websiteService),
		Dashboard:  handler.NewDashboardHandler(service.NewDashboardService(repository.NewAnalyticsRepository(db), complianceService)),
		User:       handler.NewUserHandler(service.NewUserService(userRepo, roleRepo, repository.NewPermissionRepository(db))),
	}

	limiter := routes.NewRateLimiter(cfg.RateLimit)
	t.Cleanup(limiter.Stop)

	return routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		BusinessRepo:    businessRepo,
		RateLimiter:     limiter,
	})
}

// signUp registers and logs in a fresh user
func signUp(t *testing.T, router http.Handler, email string) *apiClient {
	t.Helper()
	client := &apiClient{t: t, router: router}

	w, _ := client.do(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"first_name":       "Thandi",
		"last_name":        "Mokoena",
		"email":            email,
		"password":         "secret-pass",
		"password_confirm": "secret-pass",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env := client.do(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": "secret-pass",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var login struct {
		AccessToken string `json:"access_token"`
		Onboarded   bool   `json:"onboarded"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	assert.False(t, login.Onboarded)
	client.token = login.AccessToken
	return client
}

func TestHealth(t *testing.T) {
	router := newRouter(t)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bizhub-test")
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	client := &apiClient{t: t, router: newRouter(t)}

	w, _ := client.do(http.MethodGet, "/api/v1/leads", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDataRoutesRequireOnboarding(t *testing.T) {
	client := signUp(t, newRouter(t), "new@example.com")

	w, _ := client.do(http.MethodGet, "/api/v1/leads", nil, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env := client.do(http.MethodGet, "/api/v1/onboarding", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"onboarded":false`)
}

func TestBusinessFlow(t *testing.T) {
	router := newRouter(t)
	client := signUp(t, router, "owner@example.com")

	w, _ := client.do(http.MethodPost, "/api/v1/onboarding", map[string]string{
		"name":          "Acme Traders",
		"business_type": "retail",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, _ = client.do(http.MethodPost, "/api/v1/onboarding", map[string]string{"name": "Again"}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Leads
	w, env := client.do(http.MethodPost, "/api/v1/leads", map[string]interface{}{
		"name":  "Sipho",
		"value": "2500",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var lead struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &lead))

	w, _ = client.do(http.MethodPost, "/api/v1/leads/"+lead.ID+"/convert", nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w, _ = client.do(http.MethodPost, "/api/v1/leads/"+lead.ID+"/convert", nil, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = client.do(http.MethodGet, "/api/v1/leads?status=bogus", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Sales require an idempotency key and replay the first response
	sale := map[string]interface{}{
		"customer_name": "Walk-in",
		"status":        "paid",
		"items": []map[string]interface{}{
			{"name": "Widget", "quantity": 2, "unit_price": "50"},
		},
	}
	w, _ = client.do(http.MethodPost, "/api/v1/sales", sale, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	key := map[string]string{"Idempotency-Key": "sale-1"}
	w, env = client.do(http.MethodPost, "/api/v1/sales", sale, key)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	first := string(env.Data)
	assert.Contains(t, first, `"total":"115"`)

	w, env = client.do(http.MethodPost, "/api/v1/sales", sale, key)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, first, string(env.Data))

	w, env = client.do(http.MethodGet, "/api/v1/sales", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"total":1`)

	// Dashboard
	w, env = client.do(http.MethodGet, "/api/v1/dashboard", nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var stats struct {
		TotalRevenue   string `json:"total_revenue"`
		TotalCustomers int64  `json:"total_customers"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, "115", stats.TotalRevenue)
	assert.EqualValues(t, 1, stats.TotalCustomers)

	// Users administration is not granted to the default role
	w, _ = client.do(http.MethodGet, "/api/v1/users", nil, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPublicSite(t *testing.T) {
	router := newRouter(t)
	client := signUp(t, router, "site@example.com")

	w, _ := client.do(http.MethodPost, "/api/v1/onboarding", map[string]string{"name": "Blue Kettle"}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env := client.do(http.MethodGet, "/api/v1/website", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var site struct {
		Slug string `json:"slug"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &site))
	require.NotEmpty(t, site.Slug)

	public := func() *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sites/"+site.Slug, nil))
		return rec
	}

	assert.Equal(t, http.StatusNotFound, public().Code)

	w, _ = client.do(http.MethodPost, "/api/v1/website/publish", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	rec := public()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Blue Kettle")
}
