package client

import (
	"context"
	"errors"

	"example.com/mynotes/internal/notes"
)

// State is the controller's UI state. Loading is not a state of its own:
// it is the busy flag, which rejects duplicate submissions while a
// request is in flight and always returns to the prior state.
type State int

const (
	Unauthenticated State = iota
	Idle
	DetailOpen
	Editing
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Idle:
		return "idle"
	case DetailOpen:
		return "detail"
	case Editing:
		return "editing"
	default:
		return "unknown"
	}
}

// ErrBusy is returned when an action is attempted while another request
// is in flight. It is the programmatic form of a disabled submit button.
var ErrBusy = errors.New("another request is in flight")

// Notifier receives transient user-facing messages. Level is "success"
// or "error".
type Notifier func(level, message string)

// Controller keeps a local snapshot of the user's notes and the active
// filter, and drives the view state machine. It models a single-threaded
// event loop and is not safe for concurrent use.
type Controller struct {
	api    *Client
	notify Notifier

	state State
	busy  bool

	user      *User
	notes     []notes.Note
	activeTag string
	search    string

	detail   *notes.Note
	editing  *notes.Note // nil while creating
	returnTo State       // state restored by Cancel
}

func NewController(api *Client, notify Notifier) *Controller {
	if notify == nil {
		notify = func(string, string) {}
	}
	return &Controller{api: api, notify: notify, state: Unauthenticated}
}

// State reports the current UI state.
func (c *Controller) State() State { return c.state }

// Busy reports whether a request is in flight.
func (c *Controller) Busy() bool { return c.busy }

// CurrentUser returns the logged-in user, if any.
func (c *Controller) CurrentUser() (User, bool) {
	if c.user == nil {
		return User{}, false
	}
	return *c.user, true
}

// ActiveTag returns the current tag filter, "" meaning all notes.
func (c *Controller) ActiveTag() string { return c.activeTag }

// SearchTerm returns the current search filter.
func (c *Controller) SearchTerm() string { return c.search }

// Probe checks for an existing session on startup. An auth failure here
// is the normal logged-out case and produces no notification.
func (c *Controller) Probe(ctx context.Context) error {
	if err := c.begin(); err != nil {
		return err
	}
	u, err := c.api.Me(ctx)
	c.end()
	if err != nil {
		if !IsAuthFailure(err) {
			c.notify("error", "Unable to connect to server. Please try again later.")
		}
		return err
	}
	c.user = &u
	c.state = Idle
	return c.Refresh(ctx)
}

// Login authenticates and loads the note list.
func (c *Controller) Login(ctx context.Context, email, password string) error {
	if err := c.begin(); err != nil {
		return err
	}
	u, err := c.api.Login(ctx, email, password)
	c.end()
	if err != nil {
		c.fail(err)
		return err
	}
	c.user = &u
	c.state = Idle
	c.notify("success", "Logged in successfully!")
	return c.Refresh(ctx)
}

// Register creates an account; success logs in right away.
func (c *Controller) Register(ctx context.Context, name, email, password string) error {
	if err := c.begin(); err != nil {
		return err
	}
	u, err := c.api.Register(ctx, name, email, password)
	c.end()
	if err != nil {
		c.fail(err)
		return err
	}
	c.user = &u
	c.state = Idle
	c.notify("success", "Account created successfully!")
	return c.Refresh(ctx)
}

// Logout ends the session and discards the local snapshot.
func (c *Controller) Logout(ctx context.Context) error {
	if err := c.begin(); err != nil {
		return err
	}
	err := c.api.Logout(ctx)
	c.end()
	if err != nil {
		c.fail(err)
		return err
	}
	c.reset()
	c.notify("success", "Logged out successfully!")
	return nil
}

// Refresh re-fetches the note list with the active filter. On failure
// the prior snapshot stays untouched.
func (c *Controller) Refresh(ctx context.Context) error {
	if err := c.begin(); err != nil {
		return err
	}
	ns, err := c.api.ListNotes(ctx, notes.Filter{Tag: c.activeTag, Search: c.search})
	c.end()
	if err != nil {
		c.fail(err)
		return err
	}
	c.notes = ns
	return nil
}

// FilterByTag sets the tag filter and re-fetches. "" clears the filter
// (the "All" pseudo-tag). The search filter is kept: both apply.
func (c *Controller) FilterByTag(ctx context.Context, tag string) error {
	prev := c.activeTag
	c.activeTag = tag
	if err := c.Refresh(ctx); err != nil {
		// An auth failure already reset the whole session, filters
		// included; restoring the old filter would resurrect it.
		if c.state != Unauthenticated {
			c.activeTag = prev
		}
		return err
	}
	return nil
}

// Search sets the search term and re-fetches, keeping the tag filter.
func (c *Controller) Search(ctx context.Context, term string) error {
	prev := c.search
	c.search = term
	if err := c.Refresh(ctx); err != nil {
		if c.state != Unauthenticated {
			c.search = prev
		}
		return err
	}
	return nil
}

// Open fetches a note and moves to the detail view.
func (c *Controller) Open(ctx context.Context, noteID string) error {
	if err := c.begin(); err != nil {
		return err
	}
	n, err := c.api.GetNote(ctx, noteID)
	c.end()
	if err != nil {
		c.fail(err)
		return err
	}
	c.detail = &n
	c.state = DetailOpen
	return nil
}

// CloseDetail returns from the detail view to the grid.
func (c *Controller) CloseDetail() {
	c.detail = nil
	if c.state == DetailOpen {
		c.state = Idle
	}
}

// BeginCreate opens the editor for a new note.
func (c *Controller) BeginCreate() {
	c.returnTo = c.state
	c.editing = nil
	c.state = Editing
}

// BeginEdit opens the editor for an existing note from the snapshot.
func (c *Controller) BeginEdit(noteID string) bool {
	for i := range c.notes {
		if c.notes[i].ID == noteID {
			n := c.notes[i]
			c.returnTo = c.state
			c.editing = &n
			c.state = Editing
			return true
		}
	}
	if c.detail != nil && c.detail.ID == noteID {
		n := *c.detail
		c.returnTo = c.state
		c.editing = &n
		c.state = Editing
		return true
	}
	return false
}

// Editing returns the note loaded in the editor, if the editor holds an
// existing note.
func (c *Controller) Editing() (notes.Note, bool) {
	if c.state != Editing || c.editing == nil {
		return notes.Note{}, false
	}
	return *c.editing, true
}

// Cancel closes the editor without saving.
func (c *Controller) Cancel() {
	if c.state != Editing {
		return
	}
	c.editing = nil
	c.state = c.returnTo
}

// Save submits the editor's payload: update when editing an existing
// note, create otherwise. When the saved note is the one open in the
// detail pane, that pane is re-fetched to reflect the change.
func (c *Controller) Save(ctx context.Context, p notes.Payload) error {
	if c.state != Editing {
		return errors.New("no edit in progress")
	}
	if err := c.begin(); err != nil {
		return err
	}

	var err error
	updatingOpen := false
	if c.editing != nil {
		updatingOpen = c.detail != nil && c.detail.ID == c.editing.ID
		_, err = c.api.UpdateNote(ctx, c.editing.ID, p)
	} else {
		_, err = c.api.CreateNote(ctx, p)
	}
	c.end()
	if err != nil {
		c.fail(err)
		return err
	}

	if c.editing != nil {
		c.notify("success", "Note updated successfully!")
	} else {
		c.notify("success", "Note created successfully!")
	}

	savedID := ""
	if c.editing != nil {
		savedID = c.editing.ID
	}
	c.editing = nil
	c.detail = nil
	c.state = Idle

	if updatingOpen {
		if err := c.Open(ctx, savedID); err != nil {
			return err
		}
	}
	return c.Refresh(ctx)
}

// Delete removes the note open in the detail pane.
func (c *Controller) Delete(ctx context.Context) error {
	if c.detail == nil {
		return errors.New("no note open")
	}
	if err := c.begin(); err != nil {
		return err
	}
	err := c.api.DeleteNote(ctx, c.detail.ID)
	c.end()
	if err != nil {
		c.fail(err)
		return err
	}
	c.notify("success", "Note deleted successfully!")
	c.detail = nil
	c.state = Idle
	return c.Refresh(ctx)
}

func (c *Controller) begin() error {
	if c.busy {
		return ErrBusy
	}
	c.busy = true
	return nil
}

func (c *Controller) end() {
	c.busy = false
}

// fail handles a request error: an auth failure resets the whole session
// state; anything else surfaces a notification and changes nothing.
func (c *Controller) fail(err error) {
	if IsAuthFailure(err) {
		c.reset()
	}
	c.notify("error", err.Error())
}

func (c *Controller) reset() {
	c.state = Unauthenticated
	c.user = nil
	c.notes = nil
	c.activeTag = ""
	c.search = ""
	c.detail = nil
	c.editing = nil
}
