package moderation_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sitca-league/sitca-backend/config"
	"github.com/sitca-league/sitca-backend/internal/moderation"
	"github.com/sitca-league/sitca-backend/internal/player"
	"github.com/sitca-league/sitca-backend/internal/user"
	"github.com/sitca-league/sitca-backend/pkg/token"
)

const testSecret = "moderation-test-secret"

type fixture struct {
	router     *gin.Engine
	db         *gorm.DB
	adminToken string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// File-backed test database; ":memory:" gives each pooled connection
	// its own empty database.
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&user.User{}, &player.Player{}))

	admin := &user.User{Email: "admin@cricket.com", Password: "irrelevant", Role: user.RoleAdmin}
	require.NoError(t, db.Create(admin).Error)

	adminToken, err := token.GenerateJWT(admin.ID, admin.Role, testSecret, 1)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.JWT.Secret = testSecret
	cfg.JWT.ExpiryHours = 24

	r := gin.New()
	api := r.Group("/api")
	moderation.RegisterModerationRoutes(api, db, cfg)

	return &fixture{router: r, db: db, adminToken: adminToken}
}

func (f *fixture) seedPlayer(t *testing.T, name, status string, createdAt time.Time) *player.Player {
	t.Helper()
	p := &player.Player{
		FullName:        name,
		DOB:             time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		PrimaryPhone:    "9999999999",
		BloodGroup:      "O+",
		PrimaryRole:     "Batsman",
		ShirtSize:       "Medium",
		PantSize:        "32",
		Instagram:       "testplayer",
		PhotoURL:        "/uploads/photo-1.jpg",
		AadhaarPhotoURL: "/uploads/aadhaarPhoto-1.jpg",
		Status:          status,
	}
	p.CreatedAt = createdAt
	require.NoError(t, f.db.Create(p).Error)
	return p
}

func (f *fixture) do(t *testing.T, method, path, bearer string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *fixture) status(t *testing.T, id uint) string {
	t.Helper()
	var p player.Player
	require.NoError(t, f.db.First(&p, id).Error)
	return p.Status
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) (int, []player.Player) {
	t.Helper()
	var resp struct {
		Success bool            `json:"success"`
		Count   int             `json:"count"`
		Data    []player.Player `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	return resp.Count, resp.Data
}

func TestModerationRequiresToken(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/admin/players/pending", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.NotContains(t, w.Body.String(), `"data"`)

	w = f.do(t, http.MethodGet, "/api/admin/players/pending", "garbage-token", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestModerationRequiresAdminRole(t *testing.T) {
	f := newFixture(t)

	viewer := &user.User{Email: "viewer@cricket.com", Password: "irrelevant", Role: "VIEWER"}
	require.NoError(t, f.db.Create(viewer).Error)
	viewerToken, err := token.GenerateJWT(viewer.ID, viewer.Role, testSecret, 1)
	require.NoError(t, err)

	f.seedPlayer(t, "Hidden", player.StatusPending, time.Now())

	w := f.do(t, http.MethodGet, "/api/admin/players/pending", viewerToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	require.NotContains(t, w.Body.String(), "Hidden")
}

func TestModerationRejectsUnknownUserToken(t *testing.T) {
	f := newFixture(t)

	ghost, err := token.GenerateJWT(9999, user.RoleAdmin, testSecret, 1)
	require.NoError(t, err)

	w := f.do(t, http.MethodGet, "/api/admin/players/pending", ghost, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListPendingAndAll(t *testing.T) {
	f := newFixture(t)

	base := time.Now().Add(-time.Hour)
	f.seedPlayer(t, "First", player.StatusPending, base)
	second := f.seedPlayer(t, "Second", player.StatusPending, base.Add(time.Minute))
	f.seedPlayer(t, "Done", player.StatusApproved, base.Add(2*time.Minute))

	w := f.do(t, http.MethodGet, "/api/admin/players/pending", f.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	count, pending := decodeList(t, w)
	require.Equal(t, 2, count)
	require.Equal(t, second.ID, pending[0].ID) // newest first

	w = f.do(t, http.MethodGet, "/api/admin/players/all", f.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	count, _ = decodeList(t, w)
	require.Equal(t, 3, count)
}

func TestSetStatusApproveFlow(t *testing.T) {
	f := newFixture(t)
	p := f.seedPlayer(t, "Test Player", player.StatusPending, time.Now())

	w := f.do(t, http.MethodPatch, fmt.Sprintf("/api/admin/player/%d/status", p.ID),
		f.adminToken, gin.H{"status": "APPROVED"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, player.StatusApproved, f.status(t, p.ID))

	// Approved player disappears from the pending list but stays in all.
	w = f.do(t, http.MethodGet, "/api/admin/players/pending", f.adminToken, nil)
	count, _ := decodeList(t, w)
	require.Equal(t, 0, count)

	w = f.do(t, http.MethodGet, "/api/admin/players/all", f.adminToken, nil)
	count, all := decodeList(t, w)
	require.Equal(t, 1, count)
	require.Equal(t, player.StatusApproved, all[0].Status)
}

func TestSetStatusInvalidValue(t *testing.T) {
	f := newFixture(t)
	p := f.seedPlayer(t, "Test Player", player.StatusPending, time.Now())

	for _, bad := range []string{"PENDING", "approved", "DELETED", ""} {
		w := f.do(t, http.MethodPatch, fmt.Sprintf("/api/admin/player/%d/status", p.ID),
			f.adminToken, gin.H{"status": bad})
		require.Equal(t, http.StatusBadRequest, w.Code, "status %q", bad)
	}
	require.Equal(t, player.StatusPending, f.status(t, p.ID))
}

func TestSetStatusUnknownPlayer(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPatch, "/api/admin/player/9999/status",
		f.adminToken, gin.H{"status": "APPROVED"})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetStatusIdempotentReapply(t *testing.T) {
	f := newFixture(t)
	p := f.seedPlayer(t, "Test Player", player.StatusApproved, time.Now())

	w := f.do(t, http.MethodPatch, fmt.Sprintf("/api/admin/player/%d/status", p.ID),
		f.adminToken, gin.H{"status": "APPROVED"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, player.StatusApproved, f.status(t, p.ID))
}

func TestSetStatusFinalizedConflict(t *testing.T) {
	f := newFixture(t)
	p := f.seedPlayer(t, "Test Player", player.StatusApproved, time.Now())

	w := f.do(t, http.MethodPatch, fmt.Sprintf("/api/admin/player/%d/status", p.ID),
		f.adminToken, gin.H{"status": "REJECTED"})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, player.StatusApproved, f.status(t, p.ID))
}

func TestBulkSetStatus(t *testing.T) {
	f := newFixture(t)
	now := time.Now()
	a := f.seedPlayer(t, "A", player.StatusPending, now)
	b := f.seedPlayer(t, "B", player.StatusPending, now)

	w := f.do(t, http.MethodPost, "/api/admin/players/bulk-status",
		f.adminToken, gin.H{"player_ids": []uint{a.ID, b.ID}, "status": "REJECTED"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, player.StatusRejected, f.status(t, a.ID))
	require.Equal(t, player.StatusRejected, f.status(t, b.ID))
}

func TestBulkSetStatusAtomicOnMissingID(t *testing.T) {
	f := newFixture(t)
	a := f.seedPlayer(t, "A", player.StatusPending, time.Now())

	w := f.do(t, http.MethodPost, "/api/admin/players/bulk-status",
		f.adminToken, gin.H{"player_ids": []uint{a.ID, 9999}, "status": "APPROVED"})
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, player.StatusPending, f.status(t, a.ID))
}

func TestBulkSetStatusEmptyBatch(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/admin/players/bulk-status",
		f.adminToken, gin.H{"player_ids": []uint{}, "status": "APPROVED"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}
