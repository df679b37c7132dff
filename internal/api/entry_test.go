package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"travlog/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parisForm() entryForm {
	return entryForm{
		fields: map[string]string{
			"userEmail": "a@b.com",
			"title":     "A Trip to Paris",
			"content":   "Nice trip",
			"currency":  "EUR",
			"country":   "France",
			"location":  `{"type":"Point","coordinates":[2.35,48.85],"name":"Paris, France"}`,
			"expenses":  `[{"category":"Food","amount":12.5},{"category":"Transport","amount":7.5}]`,
		},
	}
}

func listEntries(t *testing.T, r *gin.Engine, path, token string) (*httptest.ResponseRecorder, []domain.Entry) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var entries []domain.Entry
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	}
	return w, entries
}

func TestCreateEntry(t *testing.T) {
	r, _ := setupRouter(t)
	token := tokenFor(t, "a@b.com")

	w := postEntry(t, r, parisForm(), token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Message string       `json:"message"`
		Entry   domain.Entry `json:"entry"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Entry saved successfully!", resp.Message)
	assert.NotZero(t, resp.Entry.ID)
	assert.Equal(t, "a@b.com", resp.Entry.OwnerEmail)
	assert.Equal(t, "EUR", resp.Entry.Currency)
	require.NotNil(t, resp.Entry.Location)
	assert.Equal(t, []float64{2.35, 48.85}, resp.Entry.Location.Coordinates)
	assert.InDelta(t, 20.0, domain.TotalExpenses(resp.Entry.Expenses), 1e-9)
	assert.False(t, resp.Entry.CreatedAt.IsZero())
}

func TestCreateEntryWithImages(t *testing.T) {
	r, _ := setupRouter(t)
	token := tokenFor(t, "a@b.com")

	form := parisForm()
	form.images = []string{"eiffel.jpg", "louvre.png"}
	w := postEntry(t, r, form, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Entry domain.Entry `json:"entry"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Entry.Images, 2)
	for _, p := range resp.Entry.Images {
		assert.True(t, strings.HasPrefix(p, "/uploads/"), "unexpected image path %q", p)
	}
	assert.True(t, strings.HasSuffix(resp.Entry.Images[0], ".jpg"))
	assert.True(t, strings.HasSuffix(resp.Entry.Images[1], ".png"))
}

func TestCreateEntryValidation(t *testing.T) {
	r, _ := setupRouter(t)
	token := tokenFor(t, "a@b.com")

	form := parisForm()
	delete(form.fields, "title")
	w := postEntry(t, r, form, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	form = parisForm()
	form.fields["location"] = "{broken"
	w = postEntry(t, r, form, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "malformed location payload")

	form = parisForm()
	form.fields["expenses"] = `[{"category":"Food","amount":"lots"}]`
	w = postEntry(t, r, form, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateEntryRequiresAuth(t *testing.T) {
	r, _ := setupRouter(t)

	w := postEntry(t, r, parisForm(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// A token for someone else cannot write entries under this owner
	w = postEntry(t, r, parisForm(), tokenFor(t, "other@b.com"))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListEntries(t *testing.T) {
	r, _ := setupRouter(t)
	token := tokenFor(t, "a@b.com")

	first := parisForm()
	require.Equal(t, http.StatusCreated, postEntry(t, r, first, token).Code)

	second := entryForm{fields: map[string]string{
		"userEmail": "a@b.com",
		"title":     "Rome",
		"content":   "Ancient ruins",
		"expenses":  `[{"category":"Food","amount":40}]`,
	}}
	require.Equal(t, http.StatusCreated, postEntry(t, r, second, token).Code)

	w, entries := listEntries(t, r, "/entries/a@b.com", token)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, entries, 2)
	assert.Equal(t, "Rome", entries[0].Title) // Newest first
	assert.Equal(t, "A Trip to Paris", entries[1].Title)
}

func TestListEntriesFiltered(t *testing.T) {
	r, _ := setupRouter(t)
	token := tokenFor(t, "a@b.com")

	require.Equal(t, http.StatusCreated, postEntry(t, r, parisForm(), token).Code)
	cheap := entryForm{fields: map[string]string{
		"userEmail": "a@b.com",
		"title":     "Rome",
		"content":   "Ancient ruins",
	}}
	require.Equal(t, http.StatusCreated, postEntry(t, r, cheap, token).Code)

	// Paris totals 20.0: inside [15,25], outside [25,∞)
	w, entries := listEntries(t, r, "/entries/a@b.com?expense_min=15&expense_max=25", token)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, entries, 1)
	assert.Equal(t, "A Trip to Paris", entries[0].Title)

	_, entries = listEntries(t, r, "/entries/a@b.com?expense_min=25", token)
	assert.Empty(t, entries)

	_, entries = listEntries(t, r, "/entries/a@b.com?q=paris", token)
	require.Len(t, entries, 1)
	assert.Equal(t, "A Trip to Paris", entries[0].Title)

	// Non-numeric bounds fall back to the defaults
	_, entries = listEntries(t, r, "/entries/a@b.com?expense_min=abc&expense_max=", token)
	assert.Len(t, entries, 2)
}

func TestListEntriesOwnerIsolation(t *testing.T) {
	r, _ := setupRouter(t)

	w, _ := listEntries(t, r, "/entries/a@b.com", tokenFor(t, "other@b.com"))
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Owner with no entries gets an empty list, not an error
	w, entries := listEntries(t, r, "/entries/a@b.com", tokenFor(t, "a@b.com"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, entries)
}

func TestDeleteEntry(t *testing.T) {
	r, _ := setupRouter(t)
	token := tokenFor(t, "a@b.com")

	require.Equal(t, http.StatusCreated, postEntry(t, r, parisForm(), token).Code)
	_, entries := listEntries(t, r, "/entries/a@b.com", token)
	require.Len(t, entries, 1)
	id := strconv.FormatUint(uint64(entries[0].ID), 10)

	w, resp := doJSON(t, r, http.MethodDelete, "/entries/"+id, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Entry deleted successfully", resp["message"])

	// Gone from the list and from a second delete
	_, entries = listEntries(t, r, "/entries/a@b.com", token)
	assert.Empty(t, entries)
	w, _ = doJSON(t, r, http.MethodDelete, "/entries/"+id, nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteEntryOwnership(t *testing.T) {
	r, _ := setupRouter(t)
	token := tokenFor(t, "a@b.com")

	require.Equal(t, http.StatusCreated, postEntry(t, r, parisForm(), token).Code)
	_, entries := listEntries(t, r, "/entries/a@b.com", token)
	require.Len(t, entries, 1)
	id := strconv.FormatUint(uint64(entries[0].ID), 10)

	// Someone else's token cannot delete the entry, and the row survives
	w, _ := doJSON(t, r, http.MethodDelete, "/entries/"+id, nil, tokenFor(t, "other@b.com"))
	assert.Equal(t, http.StatusForbidden, w.Code)
	_, entries = listEntries(t, r, "/entries/a@b.com", token)
	assert.Len(t, entries, 1)
}

func TestDeleteEntryBadID(t *testing.T) {
	r, _ := setupRouter(t)
	token := tokenFor(t, "a@b.com")

	w, _ := doJSON(t, r, http.MethodDelete, "/entries/not-a-number", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, r, http.MethodDelete, "/entries/424242", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
