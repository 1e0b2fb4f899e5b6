package notes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/mynotes/internal/auth"
	"example.com/mynotes/internal/errs"
	"example.com/mynotes/internal/respond"
)

type stubStore struct {
	listFn   func(context.Context, string, Filter) ([]Note, error)
	getFn    func(context.Context, string, string) (Note, error)
	createFn func(context.Context, string, Payload) (Note, error)
	updateFn func(context.Context, string, string, Payload) (Note, error)
	deleteFn func(context.Context, string, string) error
}

func (s stubStore) List(ctx context.Context, ownerID string, f Filter) ([]Note, error) {
	return s.listFn(ctx, ownerID, f)
}
func (s stubStore) Get(ctx context.Context, ownerID, noteID string) (Note, error) {
	return s.getFn(ctx, ownerID, noteID)
}
func (s stubStore) Create(ctx context.Context, ownerID string, p Payload) (Note, error) {
	return s.createFn(ctx, ownerID, p)
}
func (s stubStore) Update(ctx context.Context, ownerID, noteID string, p Payload) (Note, error) {
	return s.updateFn(ctx, ownerID, noteID, p)
}
func (s stubStore) Delete(ctx context.Context, ownerID, noteID string) error {
	return s.deleteFn(ctx, ownerID, noteID)
}

// doAs sends a request with an authenticated user id on the context, the
// way the session middleware would.
func doAs(t *testing.T, h http.Handler, userID, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req = req.WithContext(auth.WithUserID(req.Context(), userID))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) respond.Envelope {
	t.Helper()
	var env respond.Envelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	return env
}

func TestHandlers_List(t *testing.T) {
	fixed := time.Unix(3, 0).UTC()
	h := NewHandlers(stubStore{
		listFn: func(_ context.Context, ownerID string, f Filter) ([]Note, error) {
			require.Equal(t, "user-a", ownerID)
			require.Equal(t, "todo", f.Tag)
			require.Equal(t, "milk", f.Search)
			return []Note{{ID: "n1", OwnerID: ownerID, Title: "Groceries", Content: "buy milk", Tags: []string{"todo"}, CreatedAt: fixed, UpdatedAt: fixed}}, nil
		},
	}).Routes()

	rr := doAs(t, h, "user-a", http.MethodGet, "/?tag=todo&search=milk", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	env := decodeEnvelope(t, rr)
	require.True(t, env.Success)
	require.NotNil(t, env.Count)
	require.Equal(t, 1, *env.Count)
}

func TestHandlers_Get_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"not found", errs.New(errs.NotFound, "Note not found"), http.StatusNotFound, "Note not found"},
		{"forbidden", errs.New(errs.PermissionDenied, "Not authorized to access this note"), http.StatusForbidden, "Not authorized to access this note"},
		{"store failure stays generic", errs.Wrap(errs.Internal, "", io.ErrUnexpectedEOF), http.StatusInternalServerError, "Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandlers(stubStore{
				getFn: func(context.Context, string, string) (Note, error) { return Note{}, tt.err },
			}).Routes()

			rr := doAs(t, h, "user-a", http.MethodGet, "/n1", nil)
			require.Equal(t, tt.wantStatus, rr.Code)

			env := decodeEnvelope(t, rr)
			require.False(t, env.Success)
			require.Equal(t, tt.wantMsg, env.Message)
		})
	}
}

func TestHandlers_Create(t *testing.T) {
	t.Run("invalid json", func(t *testing.T) {
		h := NewHandlers(stubStore{
			createFn: func(context.Context, string, Payload) (Note, error) { return Note{}, nil },
		}).Routes()
		rr := doAs(t, h, "user-a", http.MethodPost, "/", bytes.NewBufferString("{"))
		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("validation error", func(t *testing.T) {
		h := NewHandlers(stubStore{
			createFn: func(context.Context, string, Payload) (Note, error) {
				return Note{}, errs.New(errs.InvalidArgument, "Please add a title")
			},
		}).Routes()
		rr := doAs(t, h, "user-a", http.MethodPost, "/", bytes.NewBufferString(`{"title":"","content":"x"}`))
		require.Equal(t, http.StatusBadRequest, rr.Code)
		require.Equal(t, "Please add a title", decodeEnvelope(t, rr).Message)
	})

	t.Run("success ignores any owner field in the body", func(t *testing.T) {
		created := Note{ID: "n1", OwnerID: "user-a", Title: "t", Content: "c", Tags: []string{}}
		h := NewHandlers(stubStore{
			createFn: func(_ context.Context, ownerID string, p Payload) (Note, error) {
				require.Equal(t, "user-a", ownerID)
				require.Equal(t, "t", p.Title)
				return created, nil
			},
		}).Routes()

		// The owner field is not part of Payload, so it is dropped on decode.
		body := bytes.NewBufferString(`{"title":"t","content":"c","owner":"user-b"}`)
		rr := doAs(t, h, "user-a", http.MethodPost, "/", body)
		require.Equal(t, http.StatusCreated, rr.Code)

		env := decodeEnvelope(t, rr)
		require.True(t, env.Success)
	})
}

func TestHandlers_Update_And_Delete(t *testing.T) {
	store := stubStore{
		updateFn: func(_ context.Context, ownerID, noteID string, p Payload) (Note, error) {
			require.Equal(t, "user-a", ownerID)
			require.Equal(t, "n1", noteID)
			return Note{ID: noteID, OwnerID: ownerID, Title: p.Title, Content: p.Content, Tags: p.Tags}, nil
		},
		deleteFn: func(_ context.Context, ownerID, noteID string) error {
			require.Equal(t, "n1", noteID)
			return nil
		},
	}
	h := NewHandlers(store).Routes()

	t.Run("update success", func(t *testing.T) {
		rr := doAs(t, h, "user-a", http.MethodPut, "/n1", bytes.NewBufferString(`{"title":"t2","content":"c2","tags":["x"]}`))
		require.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("update invalid json", func(t *testing.T) {
		rr := doAs(t, h, "user-a", http.MethodPut, "/n1", bytes.NewBufferString("{"))
		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("delete returns empty data object", func(t *testing.T) {
		rr := doAs(t, h, "user-a", http.MethodDelete, "/n1", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		require.JSONEq(t, `{"success":true,"data":{}}`, rr.Body.String())
	})
}
