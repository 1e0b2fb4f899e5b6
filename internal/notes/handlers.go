package notes

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"example.com/mynotes/internal/auth"
	"example.com/mynotes/internal/respond"
)

type Handlers struct {
	store Store
}

// Store is an abstraction over the notes service.
// It allows unit-testing handlers without a real database.
type Store interface {
	List(ctx context.Context, ownerID string, f Filter) ([]Note, error)
	Get(ctx context.Context, ownerID, noteID string) (Note, error)
	Create(ctx context.Context, ownerID string, p Payload) (Note, error)
	Update(ctx context.Context, ownerID, noteID string, p Payload) (Note, error)
	Delete(ctx context.Context, ownerID, noteID string) error
}

func NewHandlers(store Store) *Handlers {
	return &Handlers{store: store}
}

// Routes returns the /notes subrouter. The session middleware is mounted
// by the caller, so every handler can rely on auth.UserID being set.
func (h *Handlers) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.list)
	r.Post("/", h.create)

	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.get)
		r.Put("/", h.update)
		r.Delete("/", h.delete)
	})

	return r
}

func (h *Handlers) list(w http.ResponseWriter, r *http.Request) {
	f := Filter{
		Tag:    r.URL.Query().Get("tag"),
		Search: r.URL.Query().Get("search"),
	}

	ns, err := h.store.List(r.Context(), auth.UserID(r.Context()), f)
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.List(w, http.StatusOK, ns, len(ns))
}

func (h *Handlers) get(w http.ResponseWriter, r *http.Request) {
	n, err := h.store.Get(r.Context(), auth.UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.Data(w, http.StatusOK, n)
}

func (h *Handlers) create(w http.ResponseWriter, r *http.Request) {
	var p Payload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respond.Fail(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	n, err := h.store.Create(r.Context(), auth.UserID(r.Context()), p)
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.Data(w, http.StatusCreated, n)
}

func (h *Handlers) update(w http.ResponseWriter, r *http.Request) {
	var p Payload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respond.Fail(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	n, err := h.store.Update(r.Context(), auth.UserID(r.Context()), chi.URLParam(r, "id"), p)
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.Data(w, http.StatusOK, n)
}

func (h *Handlers) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(r.Context(), auth.UserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		respond.Err(w, err)
		return
	}
	respond.Data(w, http.StatusOK, map[string]string{})
}
