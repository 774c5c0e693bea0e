package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"residence-backend/config"
	"residence-backend/controllers"
	"residence-backend/services"
	"residence-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.MigrateSchema(db))

	cfg := config.Config{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  30 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
		CORSOrigins:     []string{"*"},
	}

	return SetupRouter(cfg,
		controllers.NewAuthController(services.NewAuthService(db), &cfg),
		controllers.NewHouseController(services.NewHouseService(db)),
		controllers.NewReservationController(services.NewReservationService(db)),
		controllers.NewCheckinController(services.NewCheckinService(db)),
		controllers.NewMaintenanceController(services.NewMaintenanceService(db)),
		controllers.NewFinanceController(services.NewFinanceService(db)),
		controllers.NewDashboardController(services.NewDashboardService(db)),
		controllers.NewChecklistController(services.NewChecklistService(db)),
	)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string, headers map[string]string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if w.Body.Len() > 0 && strings.HasPrefix(w.Body.String(), "{") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t)
	w, body := doJSON(t, r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestAuthFlow(t *testing.T) {
	r := newTestRouter(t)

	w, user := doJSON(t, r, http.MethodPost, "/api/v1/auth/register",
		`{"email": "sam@example.com", "password": "secret1"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sam@example.com", user["email"])
	assert.Equal(t, "user", user["role"])
	assert.Nil(t, user["last_login"])

	w, token := doJSON(t, r, http.MethodPost, "/api/v1/auth/login-json",
		`{"email": "sam@example.com", "password": "secret1"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "bearer", token["token_type"])
	access, _ := token["access_token"].(string)
	require.NotEmpty(t, access)
	assert.NotEmpty(t, token["refresh_token"])

	t.Run("me with token", func(t *testing.T) {
		w, me := doJSON(t, r, http.MethodGet, "/api/v1/auth/me", "",
			map[string]string{"Authorization": "Bearer " + access})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "sam@example.com", me["email"])
		assert.NotNil(t, me["last_login"])
	})

	t.Run("me without token", func(t *testing.T) {
		w, body := doJSON(t, r, http.MethodGet, "/api/v1/auth/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Not authenticated", body["detail"])
	})

	t.Run("wrong password", func(t *testing.T) {
		w, body := doJSON(t, r, http.MethodPost, "/api/v1/auth/login-json",
			`{"email": "sam@example.com", "password": "nope"}`, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Incorrect email or password", body["detail"])
	})

	t.Run("guest access", func(t *testing.T) {
		w, token := doJSON(t, r, http.MethodPost, "/api/v1/auth/guest-access", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, token["access_token"])
		assert.Equal(t, "", token["refresh_token"])
	})
}

func TestReservationLedgerFlow(t *testing.T) {
	r := newTestRouter(t)

	w, _ := doJSON(t, r, http.MethodPost, "/api/v1/houses",
		`{"id": "maison-1", "name": "Maison 1"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	checkin := utils.FormatDate(utils.Today().AddDate(0, 0, 10))
	checkout := utils.FormatDate(utils.Today().AddDate(0, 0, 14))
	payload := fmt.Sprintf(
		`{"maison": "maison-1", "nom": "Alice Martin", "checkin": %q, "checkout": %q, "montantAvance": 150}`,
		checkin, checkout)

	w, reservation := doJSON(t, r, http.MethodPost, "/api/v1/reservations", payload, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "maison-1", reservation["maison"])
	assert.Equal(t, "Alice Martin", reservation["nom"])
	assert.Equal(t, checkin, reservation["checkin"])
	assert.Equal(t, 150.0, reservation["montantAvance"])

	t.Run("derived ledger row is visible and locked", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/finance", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var ops []map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ops))
		require.Len(t, ops, 1)
		assert.Equal(t, "entree", ops[0]["type"])
		assert.Equal(t, "reservation", ops[0]["origine"])
		assert.Equal(t, false, ops[0]["editable"])
		assert.Equal(t, 150.0, ops[0]["montant"])

		opID, _ := ops[0]["id"].(string)
		require.NotEmpty(t, opID)
		wUpd, body := doJSON(t, r, http.MethodPut, "/api/v1/finance/"+opID,
			`{"montant": 999}`, nil)
		assert.Equal(t, http.StatusForbidden, wUpd.Code)
		assert.NotEmpty(t, body["detail"])
	})

	t.Run("invalid dates are rejected", func(t *testing.T) {
		bad := fmt.Sprintf(
			`{"maison": "maison-1", "nom": "X", "checkin": %q, "checkout": %q}`,
			checkout, checkin)
		w, body := doJSON(t, r, http.MethodPost, "/api/v1/reservations", bad, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.NotEmpty(t, body["detail"])
	})

	t.Run("unknown reservation", func(t *testing.T) {
		w, body := doJSON(t, r, http.MethodGet, "/api/v1/reservations/missing", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.NotEmpty(t, body["detail"])
	})
}

func TestChecklistReadinessFlow(t *testing.T) {
	r := newTestRouter(t)

	w, item := doJSON(t, r, http.MethodPost, "/api/v1/checklist/items",
		`{"maison": "maison-1", "etape": 1, "categorie": "Cuisine", "description": "Nettoyer le plan de travail", "type": "nettoyage"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Cuisine", item["categorie"])
	itemID, _ := item["id"].(string)
	require.NotEmpty(t, itemID)

	w, readiness := doJSON(t, r, http.MethodGet, "/api/v1/checklist/readiness/maison-1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, readiness["isReady"])
	assert.Equal(t, 1.0, readiness["totalTasks"])

	w, status := doJSON(t, r, http.MethodPost, "/api/v1/checklist/status/maison-1/complete",
		fmt.Sprintf(`{"taskId": %q, "completed": true}`, itemID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, status["completed"])

	w, _ = doJSON(t, r, http.MethodPost, "/api/v1/checklist/categories/maison-1/complete",
		`{"categoryId": 1, "completed": true}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, readiness = doJSON(t, r, http.MethodGet, "/api/v1/checklist/readiness/maison-1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, readiness["isReady"])
	assert.NotNil(t, readiness["lastUpdated"])
}
