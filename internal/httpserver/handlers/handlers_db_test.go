package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"stockflow/internal/auth"
	"stockflow/internal/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.StockItem{}, &models.StockRequest{},
		&models.StockHistory{}, &models.Session{}, &models.AuditLog{},
	))
	return db
}

func seedAdmin(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	u := models.User{Email: uuid.NewString() + "@test.local", PasswordHash: "x", IsAdmin: true, IsActive: true}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func asAdmin(r *http.Request, admin models.User) *http.Request {
	claims := auth.Claims{Subject: admin.ID, IsAdmin: true, JWTID: "test"}
	return r.WithContext(auth.WithClaims(r.Context(), claims))
}

func TestUpdateUserRejectsOverlongPassword(t *testing.T) {
	db := testDB(t)
	lg := zap.NewNop().Sugar()
	admin := seedAdmin(t, db)
	u := models.User{Email: uuid.NewString() + "@test.local", PasswordHash: "orig-hash", IsActive: true}
	require.NoError(t, db.Create(&u).Error)

	router := chi.NewRouter()
	router.Patch("/v1/admin/users/{id}", UpdateUser(db, lg))

	// bcrypt caps input at 72 bytes; the stored hash must survive the attempt.
	body := fmt.Sprintf(`{"password":%q}`, strings.Repeat("a", 80))
	req := httptest.NewRequest(http.MethodPatch, "/v1/admin/users/"+u.ID, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, asAdmin(req, admin))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var got models.User
	require.NoError(t, db.First(&got, "id = ?", u.ID).Error)
	assert.Equal(t, "orig-hash", got.PasswordHash)
}

func TestUpdateUserChangesPassword(t *testing.T) {
	db := testDB(t)
	lg := zap.NewNop().Sugar()
	admin := seedAdmin(t, db)
	u := models.User{Email: uuid.NewString() + "@test.local", PasswordHash: "orig-hash", IsActive: true}
	require.NoError(t, db.Create(&u).Error)

	router := chi.NewRouter()
	router.Patch("/v1/admin/users/{id}", UpdateUser(db, lg))

	req := httptest.NewRequest(http.MethodPatch, "/v1/admin/users/"+u.ID, strings.NewReader(`{"password":"n3w-pass"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, asAdmin(req, admin))
	assert.Equal(t, http.StatusOK, rec.Code)

	var got models.User
	require.NoError(t, db.First(&got, "id = ?", u.ID).Error)
	assert.NoError(t, auth.CheckPassword(got.PasswordHash, "n3w-pass"))
}

func TestCreateStockDuplicateCode(t *testing.T) {
	db := testDB(t)
	lg := zap.NewNop().Sugar()
	admin := seedAdmin(t, db)

	router := chi.NewRouter()
	router.Post("/v1/stocks", CreateStock(db, lg))

	code := "DUP-" + uuid.NewString()[:8]
	post := func() *httptest.ResponseRecorder {
		body := fmt.Sprintf(`{"code":%q,"name":"widget","quantity":3}`, code)
		req := httptest.NewRequest(http.MethodPost, "/v1/stocks", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, asAdmin(req, admin))
		return rec
	}

	assert.Equal(t, http.StatusOK, post().Code)

	rec := post()
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body errorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "stock code already exists", body.Message)
}

func TestCreateStockStoreFailureIsServerError(t *testing.T) {
	db := testDB(t)
	lg := zap.NewNop().Sugar()
	admin := seedAdmin(t, db)

	// A dead session stands in for a store outage; must not read as a
	// duplicate-code 400.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	router := chi.NewRouter()
	router.Post("/v1/stocks", CreateStock(db.WithContext(ctx), lg))

	body := fmt.Sprintf(`{"code":%q,"name":"widget","quantity":3}`, "X-"+uuid.NewString()[:8])
	req := httptest.NewRequest(http.MethodPost, "/v1/stocks", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, asAdmin(req, admin))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestDashboardCounts(t *testing.T) {
	db := testDB(t)
	lg := zap.NewNop().Sugar()
	admin := seedAdmin(t, db)
	low := models.StockItem{Code: "LOW-" + uuid.NewString()[:8], Name: "widget", Quantity: 2}
	require.NoError(t, db.Create(&low).Error)
	pending := models.StockRequest{UserID: admin.ID, StockID: low.ID, Quantity: 1, Status: models.RequestPending}
	require.NoError(t, db.Create(&pending).Error)

	rec := httptest.NewRecorder()
	Dashboard(db, lg)(rec, httptest.NewRequest(http.MethodGet, "/v1/admin/dashboard", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var res dashboardRes
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.GreaterOrEqual(t, res.TotalStocks, int64(1))
	assert.GreaterOrEqual(t, res.PendingRequests, int64(1))
	assert.GreaterOrEqual(t, res.LowStockItems, int64(1))
	assert.GreaterOrEqual(t, res.TotalUsers, int64(1))
}

func TestDashboardStoreFailureIsServerError(t *testing.T) {
	db := testDB(t)
	lg := zap.NewNop().Sugar()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rec := httptest.NewRecorder()
	Dashboard(db.WithContext(ctx), lg)(rec, httptest.NewRequest(http.MethodGet, "/v1/admin/dashboard", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body errorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "internal error", body.Message)
}
