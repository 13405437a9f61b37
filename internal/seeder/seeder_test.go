package seeder

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"log"
	"strings"
	"testing"

	"jobboard/internal/database"
	"jobboard/internal/domain/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type stubSeeder struct {
	name    string
	results []Result
	err     error
	ran     *[]string
}

func (s stubSeeder) Name() string { return s.name }
func (s stubSeeder) Run(context.Context) ([]Result, error) {
	*s.ran = append(*s.ran, s.name)
	return s.results, s.err
}

func TestRunner_StopsAtFirstFailure(t *testing.T) {
	var ran []string
	boom := errors.New("boom")
	r := Runner{Seeders: []Seeder{
		stubSeeder{name: "users", ran: &ran, results: []Result{{Message: "u"}}},
		stubSeeder{name: "jobs", ran: &ran, err: boom},
		stubSeeder{name: "late", ran: &ran},
	}}

	results, err := r.Run(context.Background())
	if !errors.Is(err, boom) || !strings.HasPrefix(err.Error(), "seed jobs:") {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(ran) != 2 {
		t.Fatalf("expected run to stop, ran %v", ran)
	}
	if len(results) != 1 {
		t.Fatalf("expected results of completed seeders, got %v", results)
	}
}

func TestRunner_LogsResults(t *testing.T) {
	var buf bytes.Buffer
	var ran []string
	r := Runner{
		Seeders:    []Seeder{stubSeeder{name: "jobs", ran: &ran, results: []Result{{Message: messagePrefix + "Engineer added"}}}},
		Logger:     log.New(&buf, "", 0),
		LogResults: true,
	}

	if _, err := r.Run(context.Background()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.Contains(buf.String(), "Engineer added") {
		t.Fatalf("expected result to be logged, got %q", buf.String())
	}
}

func TestCount_FiltersBySeeder(t *testing.T) {
	var ran []string
	r := Runner{Seeders: []Seeder{
		stubSeeder{name: "users", ran: &ran, results: []Result{{Outcome: OutcomeAdded}}},
		stubSeeder{name: "jobs", ran: &ran, results: []Result{{Outcome: OutcomeAdded}, {Outcome: OutcomeSkipped}, {Outcome: OutcomeAdded}}},
	}}

	results, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if added, skipped := Count(results, "jobs"); added != 2 || skipped != 1 {
		t.Fatalf("unexpected counts added=%d skipped=%d", added, skipped)
	}
	if added, _ := Count(results, "users"); added != 1 {
		t.Fatalf("unexpected user count %d", added)
	}
}

func TestJobsSeeder_BatchKeepsOrderAndSerializesTitles(t *testing.T) {
	store := &memJobStore{}
	s := JobsSeeder{
		Seeder: NewJobSeeder(store, &stubAdmins{}),
		Entries: []Entry{
			{Document: doc("Engineer", "v1")},
			{Document: doc("Designer", "")},
			{Document: doc("Engineer", "v2")},
			{Document: doc("Engineer", "v3"), Options: Options{Overwrite: true}},
		},
		Concurrency: 3,
	}

	results, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := []Outcome{OutcomeAdded, OutcomeAdded, OutcomeSkipped, OutcomeAdded}
	for i, w := range want {
		if results[i].Outcome != w {
			t.Fatalf("result %d: expected %s, got %+v", i, w, results[i])
		}
	}
	if store.countTitle("Engineer") != 1 {
		t.Fatalf("expected one Engineer, got %d", store.countTitle("Engineer"))
	}
	for _, j := range store.jobs {
		if j.Title == "Engineer" && j.Description != "v3" {
			t.Fatalf("expected last overwrite to win, got %q", j.Description)
		}
	}
}

func TestJobsSeeder_FailureNamesTitle(t *testing.T) {
	boom := errors.New("insert failed")
	s := JobsSeeder{
		Seeder:  NewJobSeeder(&memJobStore{insertErr: boom}, &stubAdmins{}),
		Entries: []Entry{{Document: doc("Engineer", "")}},
	}

	_, err := s.Run(context.Background())
	if !errors.Is(err, boom) || !strings.Contains(err.Error(), `"Engineer"`) {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestRunner_KeepsCompletedEntriesOfFailingBatch(t *testing.T) {
	store := &memJobStore{}
	r := Runner{Seeders: []Seeder{JobsSeeder{
		Seeder: NewJobSeeder(store, &stubAdmins{}),
		Entries: []Entry{
			{Document: doc("Engineer", "")},
			{Document: doc("   ", "")},
		},
		Concurrency: 1,
	}}}

	results, err := r.Run(context.Background())
	if err == nil {
		t.Fatalf("expected blank title to fail the batch")
	}
	if store.countTitle("Engineer") != 1 {
		t.Fatalf("expected Engineer to be stored")
	}
	if added, skipped := Count(results, JobsSeeder{}.Name()); added != 1 || skipped != 0 {
		t.Fatalf("unexpected counts added=%d skipped=%d", added, skipped)
	}
}

func TestGroupByTitle(t *testing.T) {
	groups := groupByTitle([]Entry{
		{Document: doc("a", "")},
		{Document: doc("b", "")},
		{Document: doc(" a ", "")},
	})
	if len(groups) != 2 || len(groups[0]) != 2 || groups[0][1] != 2 || groups[1][0] != 1 {
		t.Fatalf("unexpected groups: %v", groups)
	}
}

func TestWithOverwrite(t *testing.T) {
	in := []Entry{{Document: doc("a", "")}}
	out := WithOverwrite(in)
	if !out[0].Options.Overwrite || in[0].Options.Overwrite {
		t.Fatalf("expected copy with overwrite set")
	}
}

func TestDecodeEntries(t *testing.T) {
	raw := `[
		{"document": {"title": "Engineer", "company": "Acme", "hourlyWage": "40"}, "options": {"overwrite": true}},
		{"document": {"title": "Designer"}}
	]`
	entries, err := DecodeEntries(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Document.Title != "Engineer" || entries[0].Document.HourlyWage != "40" || !entries[0].Options.Overwrite {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Options.Overwrite {
		t.Fatalf("overwrite must default to false")
	}

	if _, err := DecodeEntries(strings.NewReader(`[{"document": {"salary": 1}}]`)); err == nil {
		t.Fatalf("expected unknown field error")
	}
}

func TestDefaultEntries_AreValid(t *testing.T) {
	entries := DefaultEntries()
	if len(entries) == 0 {
		t.Fatalf("expected defaults")
	}
	seen := map[string]bool{}
	for _, e := range entries {
		if err := e.Document.Validate(); err != nil {
			t.Fatalf("invalid default %q: %v", e.Document.Title, err)
		}
		if seen[e.Document.Title] {
			t.Fatalf("duplicate default title %q", e.Document.Title)
		}
		seen[e.Document.Title] = true
	}
}

type memUsers struct {
	users     []user.User
	existsErr error
}

func (m *memUsers) CreateUser(_ context.Context, u user.User) error {
	m.users = append(m.users, u)
	return nil
}
func (m *memUsers) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}
func (m *memUsers) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}
func (m *memUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	_, err := m.GetUserByEmail(ctx, email)
	return err == nil, nil
}
func (m *memUsers) FindFirstByRole(_ context.Context, role string) (uuid.UUID, bool, error) {
	for _, u := range m.users {
		if u.HasRole(role) {
			return u.ID, true, nil
		}
	}
	return uuid.Nil, false, nil
}

func TestAdminSeeder_CreatesAdminUsedForAttribution(t *testing.T) {
	users := &memUsers{}
	store := &memJobStore{}
	seeders := Defaults(nil, users, store, AdminSeeder{Email: " Admin@Example.com ", Password: "s3cret-pass"}, []Entry{{Document: doc("Engineer", "")}})

	// skip the schema check, it needs a live database
	r := Runner{Seeders: seeders[1:]}
	results, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(results) != 2 || results[0].Outcome != OutcomeAdded || results[1].Outcome != OutcomeAdded {
		t.Fatalf("unexpected results: %+v", results)
	}

	admin := users.users[0]
	if admin.Email != "admin@example.com" || !admin.IsAdmin() || admin.DisplayName != "Administrator" {
		t.Fatalf("unexpected admin: %+v", admin)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("s3cret-pass")); err != nil {
		t.Fatalf("expected bcrypt hash: %v", err)
	}
	if store.jobs[0].UserID == nil || *store.jobs[0].UserID != admin.ID {
		t.Fatalf("expected job owned by seeded admin")
	}
}

func TestAdminSeeder_SkipsExistingAndUnconfigured(t *testing.T) {
	users := &memUsers{users: []user.User{{ID: uuid.New(), Email: "admin@example.com"}}}

	results, err := AdminSeeder{Users: users, Email: "admin@example.com", Password: "x"}.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(results) != 1 || results[0].Outcome != OutcomeSkipped {
		t.Fatalf("expected skip, got %+v", results)
	}
	if len(users.users) != 1 {
		t.Fatalf("existing account must not be touched")
	}

	results, err = AdminSeeder{Users: users}.Run(context.Background())
	if err != nil || len(results) != 0 {
		t.Fatalf("expected no-op without credentials, got %v %v", results, err)
	}
}

func TestAdminSeeder_PropagatesLookupError(t *testing.T) {
	boom := errors.New("users down")
	_, err := AdminSeeder{Users: &memUsers{existsErr: boom}, Email: "a@b.c", Password: "x"}.Run(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected lookup error, got %v", err)
	}
}

type columnRows struct {
	cols []string
	i    int
}

func (r *columnRows) Close()     {}
func (r *columnRows) Err() error { return nil }
func (r *columnRows) Next() bool {
	r.i++
	return r.i <= len(r.cols)
}
func (r *columnRows) Scan(dest ...any) error {
	*(dest[0].(*string)) = r.cols[r.i-1]
	return nil
}

type columnDB struct {
	tables map[string][]string
}

func (d columnDB) Ping(context.Context) error                             { return nil }
func (d columnDB) Close() error                                           { return nil }
func (d columnDB) SQLDB() *sql.DB                                         { return nil }
func (d columnDB) Exec(context.Context, string, ...any) (int64, error)    { return 0, nil }
func (d columnDB) QueryRow(context.Context, string, ...any) database.Row { return nil }
func (d columnDB) Query(_ context.Context, _ string, args ...any) (database.Rows, error) {
	return &columnRows{cols: d.tables[args[0].(string)]}, nil
}

func TestSchemaSeeder(t *testing.T) {
	s := DefaultSchema(columnDB{tables: map[string][]string{
		"users": {"id", "email", "display_name", "password_hash", "roles", "created_at", "updated_at"},
		"jobs":  {"id", "created", "company", "title", "description", "requirement", "hourly_wage", "state", "contact_email", "user_id"},
	}})
	if _, err := s.Run(context.Background()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	s = DefaultSchema(columnDB{tables: map[string][]string{
		"users": {"id", "email", "display_name", "password_hash", "roles", "created_at"},
		"jobs":  {"id", "title"},
	}})
	_, err := s.Run(context.Background())
	if !errors.Is(err, ErrSchemaMismatch) || !strings.Contains(err.Error(), "jobs.user_id") {
		t.Fatalf("expected schema mismatch naming jobs.user_id, got %v", err)
	}
}
