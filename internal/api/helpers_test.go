package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"travlog/internal/domain"
	"travlog/internal/store"
	"travlog/internal/uploads"
	"travlog/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret"

// setupRouter builds the full route tree over an in-memory database, a
// throwaway upload dir, and no redis (cache helpers no-op on a nil client).
func setupRouter(t *testing.T) (*gin.Engine, Deps) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Entry{}))

	storage, err := uploads.NewStorage(t.TempDir())
	require.NoError(t, err)

	deps := Deps{
		Users:     store.NewUserStore(db),
		Entries:   store.NewEntryStore(db),
		Storage:   storage,
		JWTSecret: testSecret,
	}
	return NewRouter(deps), deps
}

// tokenFor mints a valid bearer token the way the login handler would.
func tokenFor(t *testing.T, email string) string {
	t.Helper()
	token, err := utils.GenerateJWT(1, email, testSecret)
	require.NoError(t, err)
	return token
}

// doJSON performs a JSON request against the router and decodes the response.
func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, token string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	resp := map[string]any{}
	if w.Body.Len() > 0 && w.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

// entryForm builds a multipart form the way the browser submits the home
// view: every field a string, photos as attached files.
type entryForm struct {
	fields map[string]string
	images []string // File names; content is a small fake JPEG payload
}

func postEntry(t *testing.T, r *gin.Engine, form entryForm, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range form.fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, name := range form.images {
		fw, err := mw.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/save-travel-entry", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
