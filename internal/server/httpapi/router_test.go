package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/corkboard/internal/common"
	"github.com/dmitrijs2005/corkboard/internal/logging"
	"github.com/dmitrijs2005/corkboard/internal/server/notes"
)

type fakeStore struct {
	notes   []*notes.Note
	listErr error
}

func (s *fakeStore) Create(ctx context.Context, n *notes.Note) (*notes.Note, error) { return n, nil }
func (s *fakeStore) Edit(ctx context.Context, id, text string, x, y float64, user notes.UserRef) error {
	return nil
}
func (s *fakeStore) Move(ctx context.Context, id string, x, y float64) error { return nil }
func (s *fakeStore) Delete(ctx context.Context, id string) error             { return nil }
func (s *fakeStore) ListByBoard(ctx context.Context, boardID string) ([]*notes.Note, error) {
	if boardID == "" {
		return nil, common.ErrorMissingBoardID
	}
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.notes, nil
}

func newTestRouter(store *fakeStore) http.Handler {
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ws := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusSwitchingProtocols)
	})
	return NewRouter(store, ws, logger, "*")
}

func TestPing(t *testing.T) {
	r := newTestRouter(&fakeStore{})
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestListNotes(t *testing.T) {
	store := &fakeStore{notes: []*notes.Note{
		{ID: "n1", BoardID: "B1", Text: "hello", Kind: "note"},
		{ID: "n2", BoardID: "B1", Text: "world", Kind: "note"},
	}}
	r := newTestRouter(store)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/notes?boardId=B1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got []*notes.Note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "n1", got[0].ID)
}

func TestListNotes_MissingBoardID(t *testing.T) {
	r := newTestRouter(&fakeStore{})
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/notes", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Missing boardId", body["error"])
}

func TestListNotes_StoreFailure(t *testing.T) {
	r := newTestRouter(&fakeStore{listErr: errors.New("db down")})
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/notes?boardId=B1", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCORSHeaders(t *testing.T) {
	r := newTestRouter(&fakeStore{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	// Preflight short-circuits before routing.
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/notes", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
