package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Rakhulsr/go-marketplace/app/handlers"
	"github.com/Rakhulsr/go-marketplace/app/models/migrations"
	"github.com/Rakhulsr/go-marketplace/app/repositories"
	"github.com/Rakhulsr/go-marketplace/app/services"
	"github.com/Rakhulsr/go-marketplace/app/utils/renderer"
	"github.com/Rakhulsr/go-marketplace/app/utils/sessions"
	"github.com/gorilla/securecookie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newAuthHandler(t *testing.T) *handlers.AuthHandler {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, migrations.AutoMigrate(db))

	authSvc := services.NewAuthService(repositories.NewUserRepository(db), "test-secret")
	store := sessions.NewCookieSessionStore(securecookie.GenerateRandomKey(64), securecookie.GenerateRandomKey(32))
	return handlers.NewAuthHandler(authSvc, store, renderer.New())
}

func TestToken_IssuesBearerAndSessionCookie(t *testing.T) {
	h := newAuthHandler(t)

	rec := httptest.NewRecorder()
	body := `{"first_name":"Ada","last_name":"Lovelace","username":"ada","email":"ada@example.com","password":"secret-pass"}`
	req := httptest.NewRequest(http.MethodPost, "/auth", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.Register(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(`{"username":"ada","password":"secret-pass"}`))
	req.Header.Set("Content-Type", "application/json")
	h.Token(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.NotEmpty(t, payload["access_token"])
	assert.Equal(t, "bearer", payload["token_type"])
	assert.Len(t, payload, 2)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "marketplace-session", cookies[0].Name)
}

func TestToken_BadCredentials(t *testing.T) {
	h := newAuthHandler(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(`{"username":"ghost","password":"whatever"}`))
	req.Header.Set("Content-Type", "application/json")
	h.Token(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}
