package migration

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadMigrations_SortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "V2__create_jobs.sql", "CREATE TABLE jobs (id int);")
	writeFile(t, dir, "V1__create_users.sql", "CREATE TABLE users (id int);\n")
	writeFile(t, dir, "README.md", "ignored")

	migs, err := loadMigrations(dir)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migs))
	}
	if migs[0].Version != 1 || migs[0].Name != "create_users" {
		t.Fatalf("unexpected first migration: %+v", migs[0])
	}
	if migs[1].Version != 2 {
		t.Fatalf("unexpected second migration: %+v", migs[1])
	}
	if migs[0].Checksum == "" || migs[0].Checksum == migs[1].Checksum {
		t.Fatalf("expected distinct checksums")
	}
}

func TestLoadMigrations_Duplicate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "V1__a.sql", "SELECT 1;")
	writeFile(t, dir, "V01__b.sql", "SELECT 2;")

	if _, err := loadMigrations(dir); err == nil {
		t.Fatalf("expected duplicate version error")
	}
}

func TestLoadMigrations_Empty(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "V1__empty.sql", "   \n")

	if _, err := loadMigrations(dir); err == nil {
		t.Fatalf("expected empty migration error")
	}
}

func TestLoadMigrations_MissingDir(t *testing.T) {
	migs, err := loadMigrations(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) != 0 {
		t.Fatalf("expected no migrations")
	}
}

func TestRepoMigrations_Load(t *testing.T) {
	migs, err := loadMigrations(filepath.Join("..", "..", "..", "migrations"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) < 2 {
		t.Fatalf("expected repository migrations, got %d", len(migs))
	}
}
