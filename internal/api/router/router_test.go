package router

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiftmoveclean/ops-backend/internal/auth"
	"github.com/swiftmoveclean/ops-backend/internal/bookings"
	"github.com/swiftmoveclean/ops-backend/internal/catalog"
	"github.com/swiftmoveclean/ops-backend/internal/chat"
	"github.com/swiftmoveclean/ops-backend/internal/conversion"
	"github.com/swiftmoveclean/ops-backend/internal/http/handlers"
	"github.com/swiftmoveclean/ops-backend/internal/leads"
	"github.com/swiftmoveclean/ops-backend/internal/observability/metrics"
	"github.com/swiftmoveclean/ops-backend/internal/payments"
	"github.com/swiftmoveclean/ops-backend/internal/quotes"
	"github.com/swiftmoveclean/ops-backend/internal/tasks"
)

const (
	testSecret   = "test-secret"
	testUsername = "admin"
	testPassword = "admin123"
)

type noopLLM struct{}

func (noopLLM) Complete(ctx context.Context, req chat.LLMRequest) (chat.LLMResponse, error) {
	return chat.LLMResponse{Text: "ok"}, nil
}

func newTestRouter(t *testing.T) (http.Handler, sqlmock.Sqlmock) {
	t.Helper()

	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	sqlDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	reg := prometheus.NewRegistry()
	m := metrics.NewOpsMetrics(reg)

	leadsRepo := leads.NewRepositoryWithDB(pool)
	bookingsRepo := bookings.NewRepositoryWithDB(pool)
	tasksRepo := tasks.NewRepositoryWithDB(pool)
	quotesRepo := quotes.NewRepositoryWithDB(pool)
	paymentsRepo := payments.NewRepositoryWithDB(pool)

	tasksSvc := tasks.NewService(tasksRepo, bookingsRepo, leadsRepo, m, nil)
	bookingsSvc := bookings.NewService(bookingsRepo, tasksSvc, nil)
	paymentsSvc := payments.NewService(paymentsRepo, bookingsRepo, tasksSvc, tasksRepo, m, nil)
	conversionSvc := conversion.NewService(pool, tasksRepo, m, nil)
	chatSvc := chat.NewService(chat.NewStoreWithDB(pool), nil, noopLLM{}, leadsRepo, m, nil, chat.Options{})

	passwordSum := sha256.Sum256([]byte(testPassword))
	authSvc := auth.NewService(testUsername, hex.EncodeToString(passwordSum[:]), testSecret, time.Hour)

	cfg := &Config{
		LeadsHandler:      leads.NewHandler(leadsRepo, m, nil),
		ChatHandler:       chat.NewHandler(chatSvc, nil),
		BookingsHandler:   bookings.NewHandler(bookingsSvc, nil),
		QuotesHandler:     quotes.NewHandler(quotesRepo, nil),
		CatalogHandler:    catalog.NewHandler(catalog.NewStoreWithDB(pool), nil),
		TasksHandler:      tasks.NewHandler(tasksSvc, nil),
		PaymentsHandler:   payments.NewHandler(paymentsSvc, nil),
		ConversionHandler: conversion.NewHandler(conversionSvc, nil),
		AuthHandler:       auth.NewHandler(authSvc, nil),
		AdminDashboard:    handlers.NewAdminDashboardHandler(sqlDB, nil),
		AdminReset:        handlers.NewAdminResetHandler(sqlDB, nil),
		AdminAuthSecret:   testSecret,
		AdminUsername:     testUsername,
		MetricsHandler:    promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	}
	return New(cfg), sqlMock
}

func loginToken(t *testing.T, router http.Handler) string {
	t.Helper()
	body := `{"username":"admin","password":"admin123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func TestHealthCheck(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestPublicCatalogNeedsNoAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/services", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Residential Moving")
}

func TestAdminRoutesRejectMissingToken(t *testing.T) {
	router, _ := newTestRouter(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/admin/dashboard/stats"},
		{http.MethodGet, "/api/admin/payments"},
		{http.MethodGet, "/api/admin/tasks"},
		{http.MethodPost, "/api/admin/convert-chatbot-lead/lead-1"},
		{http.MethodPost, "/api/admin/reset-all-data"},
		{http.MethodGet, "/api/quotes"},
	}
	for _, p := range paths {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(p.method, p.path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", p.method, p.path)
	}
}

func TestAdminRoutesRejectBadToken(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard/stats", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginThenDashboard(t *testing.T) {
	router, sqlMock := newTestRouter(t)
	token := loginToken(t, router)

	for _, n := range []int{10, 4, 6, 2, 3, 1} {
		sqlMock.ExpectQuery(`SELECT COUNT`).WillReturnRows(
			sqlmock.NewRows([]string{"count"}).AddRow(n))
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard/stats", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_contacts":10`)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestLoginRejectsBadPassword(t *testing.T) {
	router, _ := newTestRouter(t)

	body := `{"username":"admin","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
