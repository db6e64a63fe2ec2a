package app_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go-geoattend/internal/app"
	"go-geoattend/internal/config"
	"go-geoattend/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Database.Path = filepath.Join(t.TempDir(), "app.db")
	cfg.Admin.Password = "s3cret"
	cfg.Admin.JWTSecret = "test-secret"
	return cfg
}

func buildRouter(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	connection.RetryDelay = time.Millisecond

	r := gin.New()
	cleanup, err := app.BuildApp(r, cfg)
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return r
}

func TestDatabaseDSN(t *testing.T) {
	cfg := config.Default()
	cfg.Database.Path = "/tmp/a.db"
	assert.Equal(t, "/tmp/a.db?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL", app.DatabaseDSN(cfg))

	cfg.Database.Driver = config.DriverPostgres
	cfg.Database.Host = "db"
	cfg.Database.User = "u"
	cfg.Database.Password = "p"
	cfg.Database.DBName = "attendance"
	cfg.Database.Port = "5432"
	assert.Equal(t, "host=db user=u password=p dbname=attendance port=5432 sslmode=disable", app.DatabaseDSN(cfg))
}

func TestBuildApp_Routes(t *testing.T) {
	r := buildRouter(t, newTestConfig(t))

	t.Run("healthz", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("seeded roster accepts a login at the office", func(t *testing.T) {
		body := `{"employee_id":"101","name":"Alice Johnson","latitude":17.4435,"longitude":78.3772}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/submit", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	t.Run("unknown identity", func(t *testing.T) {
		body := `{"employee_id":"999","name":"Ghost","latitude":17.4435,"longitude":78.3772}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/submit", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("report requires a token", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/attendance", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("admin login then report", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/login", strings.NewReader(`{"password":"s3cret"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var login struct {
			Data struct {
				AccessToken string `json:"access_token"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
		require.NotEmpty(t, login.Data.AccessToken)

		w = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/attendance", nil)
		req.Header.Set("Authorization", "Bearer "+login.Data.AccessToken)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"name":"Alice Johnson"`)
	})
}

func TestBuildApp_SeedIsIdempotent(t *testing.T) {
	cfg := newTestConfig(t)
	buildRouter(t, cfg)
	// a second start against the same file must not fail on the seeded rows
	buildRouter(t, cfg)
}
