package repository

import (
	"context"
	"errors"
	"fmt"

	"jobboard/internal/database"
	"jobboard/internal/domain/job"

	"github.com/google/uuid"
)

const jobListingColumns = `j.id, j.created, j.company, j.title, j.description, j.requirement,
	j.hourly_wage, j.state, j.contact_email, j.user_id, COALESCE(u.display_name, '')`

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

var _ job.Repository = (*PostgresJobRepository)(nil)

func (r *PostgresJobRepository) FindByTitle(ctx context.Context, title string) (job.Job, bool, error) {
	row := r.db.QueryRow(ctx,
		`SELECT j.id, j.created, j.company, j.title, j.description, j.requirement,
			j.hourly_wage, j.state, j.contact_email, j.user_id
		 FROM jobs j
		 WHERE j.title = $1
		 ORDER BY j.created ASC
		 LIMIT 1`,
		title,
	)

	var j job.Job
	if err := row.Scan(&j.ID, &j.Created, &j.Company, &j.Title, &j.Description, &j.Requirement,
		&j.HourlyWage, &j.State, &j.ContactEmail, &j.UserID); err != nil {
		if errors.Is(err, database.ErrNoRows) {
			return job.Job{}, false, nil
		}
		return job.Job{}, false, fmt.Errorf("find job by title: %w", err)
	}
	return j, true, nil
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Listing, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+jobListingColumns+`
		 FROM jobs j
		 LEFT JOIN users u ON u.id = j.user_id
		 WHERE j.id = $1`,
		id,
	)

	l, err := scanListing(row)
	if err != nil {
		if errors.Is(err, database.ErrNoRows) {
			return job.Listing{}, job.ErrNotFound
		}
		return job.Listing{}, fmt.Errorf("get job: %w", err)
	}
	return l, nil
}

func (r *PostgresJobRepository) List(ctx context.Context, limit, offset int) ([]job.Listing, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+jobListingColumns+`
		 FROM jobs j
		 LEFT JOIN users u ON u.id = j.user_id
		 ORDER BY j.created DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	out := make([]job.Listing, 0)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) Insert(ctx context.Context, j job.Job) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO jobs (
			id, created, company, title, description, requirement,
			hourly_wage, state, contact_email, user_id
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		j.ID,
		j.Created,
		j.Company,
		j.Title,
		j.Description,
		j.Requirement,
		j.HourlyWage,
		j.State,
		j.ContactEmail,
		j.UserID,
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

func (r *PostgresJobRepository) Update(ctx context.Context, j job.Job) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE jobs
		 SET company = $2, title = $3, description = $4, requirement = $5,
			hourly_wage = $6, state = $7, contact_email = $8
		 WHERE id = $1`,
		j.ID,
		j.Company,
		j.Title,
		j.Description,
		j.Requirement,
		j.HourlyWage,
		j.State,
		j.ContactEmail,
	)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	if affected == 0 {
		return job.ErrNotFound
	}
	return nil
}

func (r *PostgresJobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if affected == 0 {
		return job.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanListing(row scanner) (job.Listing, error) {
	var l job.Listing
	err := row.Scan(
		&l.ID,
		&l.Created,
		&l.Company,
		&l.Title,
		&l.Description,
		&l.Requirement,
		&l.HourlyWage,
		&l.State,
		&l.ContactEmail,
		&l.UserID,
		&l.OwnerDisplayName,
	)
	return l, err
}
