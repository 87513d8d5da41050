package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Olocraft/propady/internal/chain"
	"github.com/Olocraft/propady/internal/model"
	"github.com/Olocraft/propady/pkg/config"
	"github.com/Olocraft/propady/pkg/database"
	"github.com/Olocraft/propady/pkg/jwtutil"
	"github.com/Olocraft/propady/pkg/storage"
	"github.com/Olocraft/propady/prometheus"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var setupOnce sync.Once

// setupTest initializes the shared collaborators once and points the global
// database at a fresh in-memory instance for each test.
func setupTest(t *testing.T) {
	setupOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			panic(err)
		}
		prometheus.InitMetrics(cfg)
		jwtutil.Initialize(&cfg.JWT)
		Initialize(storage.New(&cfg.Storage), chain.NewVerifier(time.Millisecond))
	})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Property{},
		&model.Investment{},
		&model.CrowdfundingProject{},
		&model.CrowdfundingInvestment{},
	))
	database.SetDB(db)
}

// newJSONContext builds an Echo context carrying a JSON request body
func newJSONContext(t *testing.T, method, target string, body interface{}) (echo.Context, *httptest.ResponseRecorder) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

// asAuthenticated stores the caller identity the auth middleware would set
func asAuthenticated(c echo.Context, userID uint, email string) {
	c.Set("user_id", userID)
	c.Set("email", email)
}

// decodeBody unmarshals a recorded JSON response into a map
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
