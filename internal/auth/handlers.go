package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"example.com/mynotes/internal/respond"
)

type Handlers struct {
	users    Users
	sessions SessionStore
}

// Users is an abstraction over the account service.
type Users interface {
	Register(ctx context.Context, name, email, password string) (User, error)
	Login(ctx context.Context, email, password string) (User, error)
	ByID(ctx context.Context, id string) (User, error)
}

func NewHandlers(users Users, sessions SessionStore) *Handlers {
	return &Handlers{users: users, sessions: sessions}
}

func (h *Handlers) Routes() http.Handler {
	r := chi.NewRouter()

	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Get("/logout", h.logout)
	r.Get("/me", h.me)

	return r
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// publicUser is what auth endpoints reveal about an account.
type publicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Fail(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	u, err := h.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respond.Err(w, err)
		return
	}

	// Registration logs the account in right away.
	if err := h.startSession(w, r, u.ID); err != nil {
		respond.Err(w, err)
		return
	}
	respond.Data(w, http.StatusCreated, publicUser{ID: u.ID, Name: u.Name, Email: u.Email})
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Fail(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	u, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respond.Err(w, err)
		return
	}

	if err := h.startSession(w, r, u.ID); err != nil {
		respond.Err(w, err)
		return
	}
	respond.Data(w, http.StatusOK, publicUser{ID: u.ID, Name: u.Name, Email: u.Email})
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	if token, err := tokenFromRequest(r); err == nil {
		if err := h.sessions.Destroy(r.Context(), token); err != nil {
			respond.Err(w, err)
			return
		}
	}
	ClearCookie(w)
	respond.Data(w, http.StatusOK, map[string]string{})
}

func (h *Handlers) me(w http.ResponseWriter, r *http.Request) {
	token, err := tokenFromRequest(r)
	if err != nil {
		respond.Fail(w, http.StatusUnauthorized, "Please log in to access this resource")
		return
	}
	userID, err := h.sessions.UserID(r.Context(), token)
	if err != nil {
		respond.Fail(w, http.StatusUnauthorized, "Please log in to access this resource")
		return
	}

	u, err := h.users.ByID(r.Context(), userID)
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.Data(w, http.StatusOK, publicUser{ID: u.ID, Name: u.Name, Email: u.Email})
}

func (h *Handlers) startSession(w http.ResponseWriter, r *http.Request, userID string) error {
	token, err := h.sessions.Create(r.Context(), userID)
	if err != nil {
		return err
	}
	SetCookie(w, token, h.sessions.TTL())
	return nil
}
