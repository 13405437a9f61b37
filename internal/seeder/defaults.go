package seeder

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"jobboard/internal/database"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"
)

func DefaultEntries() []Entry {
	items := []job.Fields{
		{
			Title:        "Backend Engineer (Go)",
			Company:      "Northwind Labs",
			Description:  "Build and maintain Go services, REST APIs, and PostgreSQL-backed systems.",
			Requirement:  "3+ years of Go, SQL, HTTP APIs",
			HourlyWage:   "55",
			State:        "open",
			ContactEmail: "jobs@northwind.example",
		},
		{
			Title:        "Frontend Engineer (Angular)",
			Company:      "Northwind Labs",
			Description:  "Own the admin console and the public job board UI.",
			Requirement:  "Angular, TypeScript, accessibility",
			HourlyWage:   "50",
			State:        "open",
			ContactEmail: "jobs@northwind.example",
		},
		{
			Title:        "DevOps Engineer",
			Company:      "Cloudbank",
			Description:  "Operate CI/CD, Docker, Kubernetes, and cloud infrastructure for production workloads.",
			Requirement:  "Kubernetes, Terraform, on-call experience",
			HourlyWage:   "60",
			State:        "open",
			ContactEmail: "careers@cloudbank.example",
		},
		{
			Title:        "Data Engineer",
			Company:      "Insight Works",
			Description:  "Build data pipelines and tune PostgreSQL for analytics.",
			Requirement:  "SQL, Python or Go, batch scheduling",
			HourlyWage:   "52",
			State:        "open",
			ContactEmail: "talent@insightworks.example",
		},
		{
			Title:        "QA Automation Engineer",
			Company:      "Quality Hub",
			Description:  "Write automated tests for APIs and web apps, integrate tests into CI pipelines.",
			Requirement:  "Test automation, CI, HTTP APIs",
			HourlyWage:   "42",
			State:        "closed",
			ContactEmail: "qa@qualityhub.example",
		},
	}

	out := make([]Entry, 0, len(items))
	for _, it := range items {
		out = append(out, Entry{Document: Document{Fields: it}})
	}
	return out
}

// Defaults wires the bootstrap seeders in dependency order: schema check,
// admin account, then jobs attributed to that admin.
func Defaults(db database.DB, users user.Repository, jobs JobStore, admin AdminSeeder, entries []Entry) []Seeder {
	admin.Users = users
	return []Seeder{
		DefaultSchema(db),
		admin,
		JobsSeeder{
			Seeder:  NewJobSeeder(jobs, NewAdminLookup(users)),
			Entries: entries,
		},
	}
}

// DecodeEntries reads a JSON array of {"document": {...}, "options": {...}}.
func DecodeEntries(r io.Reader) ([]Entry, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var entries []Entry
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode seed entries: %w", err)
	}
	return entries, nil
}

func LoadEntries(path string, logger *log.Logger) ([]Entry, error) {
	if path == "" {
		return DefaultEntries(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := DecodeEntries(f)
	if err != nil {
		return nil, err
	}
	if logger != nil {
		logger.Printf("[Seed] loaded %d entries from %s", len(entries), path)
	}
	return entries, nil
}
