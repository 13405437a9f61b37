package job

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"sync/atomic"
	"time"

	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

const (
	ActionCreated = "job_created"
	ActionUpdated = "job_updated"
	ActionDeleted = "job_deleted"

	listCachePrefix  = "jobs:list:"
	listCachePattern = listCachePrefix + "*"

	defaultLimit = 50
	maxLimit     = 200
)

// Requester identifies the caller. The zero value is an anonymous guest.
type Requester struct {
	UserID uuid.UUID
	Roles  []string
}

func (r Requester) IsAuthenticated() bool { return r.UserID != uuid.Nil }

func (r Requester) IsAdmin() bool { return slices.Contains(r.Roles, user.RoleAdmin) }

// View is a job as seen by a particular requester.
type View struct {
	job.Listing
	IsCurrentUserOwner bool
}

type ListCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type Notifier interface {
	JobChanged(action string, jobID uuid.UUID)
}

type Usecase interface {
	Create(ctx context.Context, req Requester, f job.Fields) (View, error)
	List(ctx context.Context, req Requester, limit, offset int) ([]View, error)
	Get(ctx context.Context, req Requester, id uuid.UUID) (View, error)
	Update(ctx context.Context, req Requester, id uuid.UUID, f job.Fields) (View, error)
	Delete(ctx context.Context, req Requester, id uuid.UUID) (View, error)
}

// Service caches list pages under a generation that every write advances, so
// a page read before a write can never be served after it.
type Service struct {
	jobs     job.Repository
	cache    ListCache
	notifier Notifier
	logger   *log.Logger

	listGen atomic.Uint64
}

func NewService(jobs job.Repository, cache ListCache, notifier Notifier, logger *log.Logger) *Service {
	s := &Service{jobs: jobs, cache: cache, notifier: notifier, logger: logger}
	// Start away from zero so keys left by an earlier process are not reused.
	s.listGen.Store(uint64(time.Now().UnixNano()))
	return s
}

var _ Usecase = (*Service)(nil)

func (s *Service) Create(ctx context.Context, req Requester, f job.Fields) (View, error) {
	if !req.IsAuthenticated() {
		return View{}, ErrUnauthorized
	}

	owner := req.UserID
	j, err := job.New(f, &owner, time.Time{})
	if err != nil {
		return View{}, err
	}
	if err := s.jobs.Insert(ctx, j); err != nil {
		return View{}, internal(err)
	}
	s.changed(ctx, ActionCreated, j.ID)

	created, err := s.jobs.GetByID(ctx, j.ID)
	if err != nil {
		return View{}, internal(err)
	}
	return viewFor(req, created), nil
}

func (s *Service) List(ctx context.Context, req Requester, limit, offset int) ([]View, error) {
	if limit == 0 {
		limit = defaultLimit
	}
	if limit < 0 || limit > maxLimit || offset < 0 {
		return nil, ErrInvalidInput
	}

	key := fmt.Sprintf("%s%d:%d:%d", listCachePrefix, s.listGen.Load(), limit, offset)
	var listings []job.Listing
	hit := false
	if s.cache != nil {
		ok, err := s.cache.GetJSON(ctx, key, &listings)
		hit = err == nil && ok
		if s.logger != nil {
			if hit {
				s.logger.Printf("[Jobs] Cache HIT: %s", key)
			} else {
				s.logger.Printf("[Jobs] Cache MISS: %s", key)
			}
		}
	}

	if !hit {
		var err error
		listings, err = s.jobs.List(ctx, limit, offset)
		if err != nil {
			return nil, internal(err)
		}
		if s.cache != nil {
			_ = s.cache.SetJSON(ctx, key, listings, 0)
		}
	}

	out := make([]View, 0, len(listings))
	for _, l := range listings {
		out = append(out, viewFor(req, l))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, req Requester, id uuid.UUID) (View, error) {
	l, err := s.load(ctx, id)
	if err != nil {
		return View{}, err
	}
	return viewFor(req, l), nil
}

// Update replaces every editable field. Created time and owner are kept.
func (s *Service) Update(ctx context.Context, req Requester, id uuid.UUID, f job.Fields) (View, error) {
	l, err := s.loadForWrite(ctx, req, id)
	if err != nil {
		return View{}, err
	}
	if err := l.Apply(f); err != nil {
		return View{}, err
	}
	if err := s.jobs.Update(ctx, l.Job); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return View{}, err
		}
		return View{}, internal(err)
	}
	s.changed(ctx, ActionUpdated, id)
	return viewFor(req, l), nil
}

// Delete removes the job and returns it as it was before deletion.
func (s *Service) Delete(ctx context.Context, req Requester, id uuid.UUID) (View, error) {
	l, err := s.loadForWrite(ctx, req, id)
	if err != nil {
		return View{}, err
	}
	if err := s.jobs.Delete(ctx, id); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return View{}, err
		}
		return View{}, internal(err)
	}
	s.changed(ctx, ActionDeleted, id)
	return viewFor(req, l), nil
}

// InvalidateList retires the current list generation and drops every cached
// listing page.
func (s *Service) InvalidateList(ctx context.Context) {
	s.listGen.Add(1)
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, listCachePattern); err != nil && s.logger != nil {
		s.logger.Printf("[Jobs] Cache invalidate failed: %v", err)
	}
}

func (s *Service) load(ctx context.Context, id uuid.UUID) (job.Listing, error) {
	if id == uuid.Nil {
		return job.Listing{}, ErrInvalidInput
	}
	l, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Listing{}, err
		}
		return job.Listing{}, internal(err)
	}
	return l, nil
}

func (s *Service) loadForWrite(ctx context.Context, req Requester, id uuid.UUID) (job.Listing, error) {
	if !req.IsAuthenticated() {
		return job.Listing{}, ErrUnauthorized
	}
	l, err := s.load(ctx, id)
	if err != nil {
		return job.Listing{}, err
	}
	if !req.IsAdmin() && !l.IsOwnedBy(req.UserID) {
		return job.Listing{}, ErrForbidden
	}
	return l, nil
}

func (s *Service) changed(ctx context.Context, action string, id uuid.UUID) {
	s.InvalidateList(ctx)
	if s.notifier != nil {
		s.notifier.JobChanged(action, id)
	}
}

func viewFor(req Requester, l job.Listing) View {
	return View{Listing: l, IsCurrentUserOwner: l.IsOwnedBy(req.UserID)}
}

func internal(err error) error {
	return fmt.Errorf("%w: %w", ErrInternal, err)
}
