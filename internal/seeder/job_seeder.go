package seeder

import (
	"context"
	"strings"
	"time"

	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"

	"github.com/google/uuid"
)

const messagePrefix = "Database Seeding: Job\t"

// Options tune a single seed call.
type Options struct {
	// Overwrite replaces an existing job with the same title instead of skipping it.
	Overwrite bool `json:"overwrite"`
}

// Document is a static job used to pre-populate storage.
type Document struct {
	job.Fields
	Created time.Time `json:"created,omitempty"`
}

// Entry pairs a document with the options it is seeded under.
type Entry struct {
	Document Document `json:"document"`
	Options  Options  `json:"options"`
}

type Outcome string

const (
	OutcomeAdded   Outcome = "added"
	OutcomeSkipped Outcome = "skipped"
)

type Result struct {
	// Seeder is the name of the seeder that produced the result; set by Runner.
	Seeder  string
	Title   string
	Outcome Outcome
	Message string
}

// JobStore is the subset of job storage a seed call needs.
type JobStore interface {
	FindByTitle(ctx context.Context, title string) (job.Job, bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Insert(ctx context.Context, j job.Job) error
}

// AdminLookup finds the account seeded jobs are attributed to. ok is false
// when there is none.
type AdminLookup interface {
	FindAdmin(ctx context.Context) (id uuid.UUID, ok bool, err error)
}

type roleFinder interface {
	FindFirstByRole(ctx context.Context, role string) (uuid.UUID, bool, error)
}

type directoryAdminLookup struct {
	users roleFinder
}

// NewAdminLookup resolves the admin through the user directory.
func NewAdminLookup(users roleFinder) AdminLookup {
	return directoryAdminLookup{users: users}
}

func (l directoryAdminLookup) FindAdmin(ctx context.Context) (uuid.UUID, bool, error) {
	if l.users == nil {
		return uuid.Nil, false, nil
	}
	return l.users.FindFirstByRole(ctx, user.RoleAdmin)
}

// JobSeeder idempotently inserts seed documents keyed by title.
//
// The existence check, delete and insert are separate statements. Two calls
// racing on the same title can both insert; callers that seed overlapping
// titles concurrently must serialize those calls.
type JobSeeder struct {
	jobs   JobStore
	admins AdminLookup
}

func NewJobSeeder(jobs JobStore, admins AdminLookup) *JobSeeder {
	return &JobSeeder{jobs: jobs, admins: admins}
}

// Seed applies doc under opts. Every lookup, delete or insert failure is
// returned unchanged and stops the call; a failed delete never inserts.
func (s *JobSeeder) Seed(ctx context.Context, doc Document, opts Options) (Result, error) {
	title := strings.TrimSpace(doc.Title)

	skip, err := s.checkExisting(ctx, title, opts)
	if err != nil {
		return Result{}, err
	}
	if skip {
		return Result{
			Title:   title,
			Outcome: OutcomeSkipped,
			Message: messagePrefix + title + " skipped",
		}, nil
	}

	var owner *uuid.UUID
	if s.admins != nil {
		adminID, ok, err := s.admins.FindAdmin(ctx)
		if err != nil {
			return Result{}, err
		}
		if ok {
			owner = &adminID
		}
	}

	j, err := job.New(doc.Fields, owner, doc.Created)
	if err != nil {
		return Result{}, err
	}
	if err := s.jobs.Insert(ctx, j); err != nil {
		return Result{}, err
	}

	return Result{
		Title:   j.Title,
		Outcome: OutcomeAdded,
		Message: messagePrefix + j.Title + " added",
	}, nil
}

// checkExisting reports whether the document should be skipped, deleting the
// stored job first when overwriting.
func (s *JobSeeder) checkExisting(ctx context.Context, title string, opts Options) (bool, error) {
	existing, found, err := s.jobs.FindByTitle(ctx, title)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}
	if !opts.Overwrite {
		return true, nil
	}
	if err := s.jobs.Delete(ctx, existing.ID); err != nil {
		return false, err
	}
	return false, nil
}
