package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countRow(n int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count"}).AddRow(n)
}

func TestGetDashboardStats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	handler := NewAdminDashboardHandler(db, nil)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM leads WHERE source IS DISTINCT FROM 'chatbot'`).
		WillReturnRows(countRow(12))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
		WillReturnRows(countRow(5))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM leads WHERE source = 'chatbot'`).
		WillReturnRows(countRow(7))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM leads WHERE status = 'new'`).
		WillReturnRows(countRow(3))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM leads WHERE created_at >=`).
		WillReturnRows(countRow(4))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings WHERE created_at >=`).
		WillReturnRows(countRow(2))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard/stats", nil)
	rec := httptest.NewRecorder()
	handler.GetDashboardStats(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp DashboardStatsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 12, resp.TotalContacts)
	assert.Equal(t, 5, resp.TotalBookings)
	assert.Equal(t, 7, resp.ChatbotQuotes)
	assert.Equal(t, 3, resp.PendingContacts)
	assert.Equal(t, 4, resp.RecentContacts)
	assert.Equal(t, 2, resp.RecentBookings)
	assert.False(t, resp.LastUpdated.IsZero())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDashboardStatsQueryFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	handler := NewAdminDashboardHandler(db, nil)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM leads WHERE source IS DISTINCT FROM 'chatbot'`).
		WillReturnError(sql.ErrConnDone)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard/stats", nil)
	rec := httptest.NewRecorder()
	handler.GetDashboardStats(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
