package player_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sitca-league/sitca-backend/config"
	"github.com/sitca-league/sitca-backend/internal/player"
)

var (
	pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0}
	jpgBytes = []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F'}
	pdfBytes = []byte("%PDF-1.4\n%fake test document\n")
)

func validFields() map[string]string {
	return map[string]string{
		"fullName":     "Test Player",
		"dob":          "2000-01-01",
		"primaryPhone": "9999999999",
		"bloodGroup":   "O+",
		"primaryRole":  "Batsman",
		"shirtSize":    "Medium",
		"pantSize":     "32",
		"instagram":    "testplayer",
	}
}

type intakeFixture struct {
	router    *gin.Engine
	db        *gorm.DB
	uploadDir string
}

func newIntakeFixture(t *testing.T) *intakeFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := newTestDB(t)
	uploadDir := t.TempDir()

	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.App.UploadDir = uploadDir
	cfg.Upload.MaxFileBytes = 5 << 20

	r := gin.New()
	api := r.Group("/api")
	player.RegisterPlayerRoutes(api, db, cfg)

	return &intakeFixture{router: r, db: db, uploadDir: uploadDir}
}

func (f *intakeFixture) register(t *testing.T, fields map[string]string, files map[string][]byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for field, content := range files {
		fw, err := w.CreateFormFile(field, field+".bin")
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/player/register-public", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *intakeFixture) playerCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&player.Player{}).Count(&n).Error)
	return n
}

func (f *intakeFixture) uploadedFiles(t *testing.T) []os.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(f.uploadDir)
	require.NoError(t, err)
	return entries
}

func TestRegisterPublicSuccess(t *testing.T) {
	f := newIntakeFixture(t)

	rec := f.register(t, validFields(), map[string][]byte{
		"photo":        jpgBytes,
		"aadhaarPhoto": jpgBytes,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Success bool          `json:"success"`
		Data    player.Player `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, player.StatusPending, resp.Data.Status)
	require.Equal(t, "Test Player", resp.Data.FullName)
	require.Nil(t, resp.Data.UserID)

	// Both uploads are on disk and referenced by the row.
	require.Len(t, f.uploadedFiles(t), 2)
	require.Contains(t, resp.Data.PhotoURL, "/uploads/photo-")
	require.Contains(t, resp.Data.AadhaarPhotoURL, "/uploads/aadhaarPhoto-")
	require.EqualValues(t, 1, f.playerCount(t))
}

func TestRegisterPublicAadhaarAsPDF(t *testing.T) {
	f := newIntakeFixture(t)

	rec := f.register(t, validFields(), map[string][]byte{
		"photo":        pngBytes,
		"aadhaarPhoto": pdfBytes,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, f.uploadedFiles(t), 2)
}

func TestRegisterPublicMissingField(t *testing.T) {
	f := newIntakeFixture(t)

	fields := validFields()
	delete(fields, "bloodGroup")

	rec := f.register(t, fields, map[string][]byte{
		"photo":        jpgBytes,
		"aadhaarPhoto": jpgBytes,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "bloodGroup")
	require.EqualValues(t, 0, f.playerCount(t))
	require.Empty(t, f.uploadedFiles(t))
}

func TestRegisterPublicMissingFile(t *testing.T) {
	f := newIntakeFixture(t)

	rec := f.register(t, validFields(), map[string][]byte{
		"photo": jpgBytes,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.EqualValues(t, 0, f.playerCount(t))
	require.Empty(t, f.uploadedFiles(t))
}

func TestRegisterPublicBadDOB(t *testing.T) {
	f := newIntakeFixture(t)

	fields := validFields()
	fields["dob"] = "01/01/2000"

	rec := f.register(t, fields, map[string][]byte{
		"photo":        jpgBytes,
		"aadhaarPhoto": jpgBytes,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "dob")
	require.EqualValues(t, 0, f.playerCount(t))
}

func TestRegisterPublicBadPrimaryRole(t *testing.T) {
	f := newIntakeFixture(t)

	fields := validFields()
	fields["primaryRole"] = "Wicketkeeper"

	rec := f.register(t, fields, map[string][]byte{
		"photo":        jpgBytes,
		"aadhaarPhoto": jpgBytes,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.EqualValues(t, 0, f.playerCount(t))
}

func TestRegisterPublicPDFAsPhotoRejected(t *testing.T) {
	f := newIntakeFixture(t)

	rec := f.register(t, validFields(), map[string][]byte{
		"photo":        pdfBytes,
		"aadhaarPhoto": jpgBytes,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.EqualValues(t, 0, f.playerCount(t))
	require.Empty(t, f.uploadedFiles(t))
}

// The photo is saved before the aadhaar document is validated; a bad second
// file must not leave the first one behind.
func TestRegisterPublicCleansUpAfterSecondFileFails(t *testing.T) {
	f := newIntakeFixture(t)

	rec := f.register(t, validFields(), map[string][]byte{
		"photo":        jpgBytes,
		"aadhaarPhoto": []byte("plain text, not a document"),
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.EqualValues(t, 0, f.playerCount(t))
	require.Empty(t, f.uploadedFiles(t))
}
