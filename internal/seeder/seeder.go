package seeder

import (
	"context"
	"fmt"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context) ([]Result, error)
}

type Runner struct {
	Seeders    []Seeder
	Logger     *log.Logger
	LogResults bool
}

// Run executes the seeders in order and stops at the first failure.
func (r Runner) Run(ctx context.Context) ([]Result, error) {
	var all []Result
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		// A failing seeder may still report the writes it completed.
		results, err := s.Run(ctx)
		for i := range results {
			results[i].Seeder = s.Name()
			if r.LogResults && r.Logger != nil {
				r.Logger.Printf("[Seed] %s", results[i].Message)
			}
		}
		all = append(all, results...)
		if err != nil {
			return all, fmt.Errorf("seed %s: %w", s.Name(), err)
		}
	}
	return all, nil
}

const defaultConcurrency = 4

// JobsSeeder seeds a batch of entries. Entries sharing a title run in input
// order on one goroutine; distinct titles run concurrently. On failure Run
// returns the results of the entries that completed along with the error.
type JobsSeeder struct {
	Seeder      *JobSeeder
	Entries     []Entry
	Concurrency int
}

func (JobsSeeder) Name() string { return "jobs" }

func (s JobsSeeder) Run(ctx context.Context) ([]Result, error) {
	if s.Seeder == nil {
		return nil, fmt.Errorf("nil job seeder")
	}

	limit := s.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}

	results := make([]Result, len(s.Entries))
	done := make([]bool, len(s.Entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, idxs := range groupByTitle(s.Entries) {
		g.Go(func() error {
			for _, i := range idxs {
				e := s.Entries[i]
				res, err := s.Seeder.Seed(gctx, e.Document, e.Options)
				if err != nil {
					return fmt.Errorf("%q: %w", strings.TrimSpace(e.Document.Title), err)
				}
				results[i] = res
				done[i] = true
			}
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		return results, nil
	}

	var partial []Result
	for i, ok := range done {
		if ok {
			partial = append(partial, results[i])
		}
	}
	return partial, err
}

// groupByTitle buckets entry indexes by trimmed title, keeping first-seen order.
func groupByTitle(entries []Entry) [][]int {
	pos := map[string]int{}
	var groups [][]int
	for i, e := range entries {
		key := strings.TrimSpace(e.Document.Title)
		g, ok := pos[key]
		if !ok {
			g = len(groups)
			pos[key] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], i)
	}
	return groups
}

// WithOverwrite returns a copy of entries with Overwrite forced on.
func WithOverwrite(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		e.Options.Overwrite = true
		out[i] = e
	}
	return out
}

// Count tallies the outcomes produced by the named seeder.
func Count(results []Result, seeder string) (added, skipped int) {
	for _, r := range results {
		if r.Seeder != seeder {
			continue
		}
		switch r.Outcome {
		case OutcomeAdded:
			added++
		case OutcomeSkipped:
			skipped++
		}
	}
	return added, skipped
}
