package notes

import (
	"context"
	"errors"

	"example.com/mynotes/internal/errs"
	"example.com/mynotes/internal/stringsx"
)

// Repo is the storage surface the service needs. *Repository implements
// it; tests use an in-memory substitute.
type Repo interface {
	Create(ctx context.Context, ownerID string, p Payload) (Note, error)
	Get(ctx context.Context, id string) (Note, error)
	Update(ctx context.Context, id string, p Payload) (Note, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, ownerID string, f Filter) ([]Note, error)
}

// Service enforces ownership and validation on top of the store.
// Every operation requires a non-empty caller identity.
type Service struct {
	repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, ownerID string, f Filter) ([]Note, error) {
	if ownerID == "" {
		return nil, errUnauthenticated()
	}
	ns, err := s.repo.List(ctx, ownerID, f)
	if err != nil {
		return nil, errs.Wrap(errs.Internal, "", err)
	}
	return ns, nil
}

func (s *Service) Get(ctx context.Context, ownerID, noteID string) (Note, error) {
	if ownerID == "" {
		return Note{}, errUnauthenticated()
	}
	return s.owned(ctx, ownerID, noteID, "Not authorized to access this note")
}

func (s *Service) Create(ctx context.Context, ownerID string, p Payload) (Note, error) {
	if ownerID == "" {
		return Note{}, errUnauthenticated()
	}
	if err := validate(p); err != nil {
		return Note{}, err
	}
	n, err := s.repo.Create(ctx, ownerID, p)
	if err != nil {
		return Note{}, errs.Wrap(errs.Internal, "", err)
	}
	return n, nil
}

func (s *Service) Update(ctx context.Context, ownerID, noteID string, p Payload) (Note, error) {
	if ownerID == "" {
		return Note{}, errUnauthenticated()
	}
	if err := validate(p); err != nil {
		return Note{}, err
	}
	if _, err := s.owned(ctx, ownerID, noteID, "Not authorized to update this note"); err != nil {
		return Note{}, err
	}
	n, err := s.repo.Update(ctx, noteID, p)
	if err != nil {
		if errors.Is(err, ErrNoteNotFound) {
			// Deleted between the check and the write.
			return Note{}, errNoteNotFound()
		}
		return Note{}, errs.Wrap(errs.Internal, "", err)
	}
	return n, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, noteID string) error {
	if ownerID == "" {
		return errUnauthenticated()
	}
	if _, err := s.owned(ctx, ownerID, noteID, "Not authorized to delete this note"); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, noteID); err != nil {
		if errors.Is(err, ErrNoteNotFound) {
			return errNoteNotFound()
		}
		return errs.Wrap(errs.Internal, "", err)
	}
	return nil
}

// owned loads the note and applies the canonical check order: existence
// first, then ownership.
func (s *Service) owned(ctx context.Context, ownerID, noteID, forbiddenMsg string) (Note, error) {
	n, err := s.repo.Get(ctx, noteID)
	if err != nil {
		if errors.Is(err, ErrNoteNotFound) {
			return Note{}, errNoteNotFound()
		}
		return Note{}, errs.Wrap(errs.Internal, "", err)
	}
	if n.OwnerID != ownerID {
		return Note{}, errs.New(errs.PermissionDenied, forbiddenMsg)
	}
	return n, nil
}

func validate(p Payload) error {
	if stringsx.IsBlank(p.Title) {
		return errs.New(errs.InvalidArgument, "Please add a title")
	}
	if stringsx.IsBlank(p.Content) {
		return errs.New(errs.InvalidArgument, "Please add some content")
	}
	return nil
}

func errUnauthenticated() error {
	return errs.New(errs.Unauthenticated, "Please log in to access this resource")
}

func errNoteNotFound() error {
	return errs.New(errs.NotFound, "Note not found")
}
