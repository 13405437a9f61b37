package seeder

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"jobboard/internal/domain/job"

	"github.com/google/uuid"
)

type memJobStore struct {
	mu   sync.Mutex
	jobs []job.Job

	findErr   error
	deleteErr error
	insertErr error

	calls []string
}

func (m *memJobStore) FindByTitle(_ context.Context, title string) (job.Job, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "find")
	if m.findErr != nil {
		return job.Job{}, false, m.findErr
	}
	for _, j := range m.jobs {
		if j.Title == title {
			return j, true, nil
		}
	}
	return job.Job{}, false, nil
}

func (m *memJobStore) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "delete")
	if m.deleteErr != nil {
		return m.deleteErr
	}
	for i, j := range m.jobs {
		if j.ID == id {
			m.jobs = append(m.jobs[:i], m.jobs[i+1:]...)
			return nil
		}
	}
	return job.ErrNotFound
}

func (m *memJobStore) Insert(_ context.Context, j job.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "insert")
	if m.insertErr != nil {
		return m.insertErr
	}
	m.jobs = append(m.jobs, j)
	return nil
}

func (m *memJobStore) countTitle(title string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, j := range m.jobs {
		if j.Title == title {
			n++
		}
	}
	return n
}

type stubAdmins struct {
	id    uuid.UUID
	found bool
	err   error
	calls int
}

func (s *stubAdmins) FindAdmin(context.Context) (uuid.UUID, bool, error) {
	s.calls++
	return s.id, s.found, s.err
}

func doc(title, description string) Document {
	return Document{Fields: job.Fields{Title: title, Description: description}}
}

func TestSeed_InsertsIntoEmptyStore(t *testing.T) {
	store := &memJobStore{}
	s := NewJobSeeder(store, &stubAdmins{})

	res, err := s.Seed(context.Background(), doc("Engineer", ""), Options{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Outcome != OutcomeAdded || !strings.Contains(res.Message, "added") || !strings.Contains(res.Message, "Engineer") {
		t.Fatalf("unexpected result: %+v", res)
	}
	if store.countTitle("Engineer") != 1 {
		t.Fatalf("expected exactly one Engineer")
	}
}

func TestSeed_SkipsExistingWithoutOverwrite(t *testing.T) {
	store := &memJobStore{}
	admins := &stubAdmins{}
	s := NewJobSeeder(store, admins)
	ctx := context.Background()

	if _, err := s.Seed(ctx, doc("Engineer", "v1"), Options{}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	admins.calls = 0
	store.calls = nil

	res, err := s.Seed(ctx, doc("Engineer", "v2"), Options{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Outcome != OutcomeSkipped || !strings.Contains(res.Message, "skipped") || !strings.Contains(res.Message, "Engineer") {
		t.Fatalf("unexpected result: %+v", res)
	}
	if store.countTitle("Engineer") != 1 || store.jobs[0].Description != "v1" {
		t.Fatalf("storage mutated on skip: %+v", store.jobs)
	}
	if len(store.calls) != 1 || store.calls[0] != "find" {
		t.Fatalf("skip must only look up, got %v", store.calls)
	}
	if admins.calls != 0 {
		t.Fatalf("skip must not look up the admin")
	}
}

func TestSeed_OverwriteReplacesExisting(t *testing.T) {
	store := &memJobStore{}
	s := NewJobSeeder(store, &stubAdmins{})
	ctx := context.Background()

	if _, err := s.Seed(ctx, doc("Engineer", "v1"), Options{}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	oldID := store.jobs[0].ID

	res, err := s.Seed(ctx, doc("Engineer", "v2"), Options{Overwrite: true})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Outcome != OutcomeAdded {
		t.Fatalf("unexpected result: %+v", res)
	}
	if store.countTitle("Engineer") != 1 {
		t.Fatalf("expected exactly one Engineer, got %d", store.countTitle("Engineer"))
	}
	if store.jobs[0].Description != "v2" || store.jobs[0].ID == oldID {
		t.Fatalf("expected new record, got %+v", store.jobs[0])
	}
}

func TestSeed_AttributesToAdmin(t *testing.T) {
	admin := uuid.New()
	store := &memJobStore{}
	s := NewJobSeeder(store, &stubAdmins{id: admin, found: true})

	if _, err := s.Seed(context.Background(), doc("Engineer", ""), Options{}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if store.jobs[0].UserID == nil || *store.jobs[0].UserID != admin {
		t.Fatalf("expected admin owner, got %v", store.jobs[0].UserID)
	}
}

func TestSeed_NoAdminLeavesOwnerEmpty(t *testing.T) {
	store := &memJobStore{}
	s := NewJobSeeder(store, &stubAdmins{found: false})

	if _, err := s.Seed(context.Background(), doc("Engineer", ""), Options{}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if store.jobs[0].UserID != nil {
		t.Fatalf("expected no owner, got %v", store.jobs[0].UserID)
	}
}

func TestSeed_LookupFailurePropagates(t *testing.T) {
	boom := errors.New("find failed")
	store := &memJobStore{findErr: boom}
	s := NewJobSeeder(store, &stubAdmins{})

	_, err := s.Seed(context.Background(), doc("Engineer", ""), Options{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected lookup error, got %v", err)
	}
	if len(store.jobs) != 0 {
		t.Fatalf("expected no insert")
	}
}

func TestSeed_DeleteFailureSkipsInsert(t *testing.T) {
	boom := errors.New("delete failed")
	store := &memJobStore{}
	s := NewJobSeeder(store, &stubAdmins{})
	ctx := context.Background()

	if _, err := s.Seed(ctx, doc("Engineer", "v1"), Options{}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	store.deleteErr = boom
	store.calls = nil

	_, err := s.Seed(ctx, doc("Engineer", "v2"), Options{Overwrite: true})
	if !errors.Is(err, boom) {
		t.Fatalf("expected delete error, got %v", err)
	}
	for _, c := range store.calls {
		if c == "insert" {
			t.Fatalf("insert attempted after failed delete: %v", store.calls)
		}
	}
	if store.jobs[0].Description != "v1" {
		t.Fatalf("existing record should survive")
	}
}

func TestSeed_AdminLookupFailurePropagates(t *testing.T) {
	boom := errors.New("users unavailable")
	store := &memJobStore{}
	s := NewJobSeeder(store, &stubAdmins{err: boom})

	_, err := s.Seed(context.Background(), doc("Engineer", ""), Options{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected admin lookup error, got %v", err)
	}
	if len(store.jobs) != 0 {
		t.Fatalf("expected no insert")
	}
}

func TestSeed_ValidationFailurePropagates(t *testing.T) {
	store := &memJobStore{}
	s := NewJobSeeder(store, &stubAdmins{})

	_, err := s.Seed(context.Background(), doc("   ", ""), Options{})
	var vErr *job.ValidationError
	if !errors.As(err, &vErr) || vErr.Field != job.FieldTitle {
		t.Fatalf("expected title validation error, got %v", err)
	}
	if len(store.jobs) != 0 {
		t.Fatalf("expected no insert")
	}
}

func TestSeed_InsertFailurePropagates(t *testing.T) {
	boom := errors.New("insert failed")
	s := NewJobSeeder(&memJobStore{insertErr: boom}, &stubAdmins{})

	if _, err := s.Seed(context.Background(), doc("Engineer", ""), Options{}); !errors.Is(err, boom) {
		t.Fatalf("expected insert error, got %v", err)
	}
}

func TestSeed_TrimmedTitleIsIdempotent(t *testing.T) {
	store := &memJobStore{}
	s := NewJobSeeder(store, &stubAdmins{})
	ctx := context.Background()

	if _, err := s.Seed(ctx, doc("  Engineer ", ""), Options{}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	res, err := s.Seed(ctx, doc("Engineer", ""), Options{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Outcome != OutcomeSkipped || store.countTitle("Engineer") != 1 {
		t.Fatalf("expected skip of trimmed duplicate, got %+v", res)
	}
}

func TestNewAdminLookup_NilDirectory(t *testing.T) {
	_, ok, err := NewAdminLookup(nil).FindAdmin(context.Background())
	if err != nil || ok {
		t.Fatalf("expected absence, got ok=%v err=%v", ok, err)
	}
}
