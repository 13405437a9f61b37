package job

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	FieldTitle = "title"

	MessageTitleBlank = "Title cannot be blank"
)

var ErrNotFound = errors.New("job not found")

// ValidationError reports a field constraint violated by a write.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Field + ": " + e.Message
}

// Job is a stored job posting. UserID is a weak reference to the owning user.
type Job struct {
	ID           uuid.UUID
	Created      time.Time
	Company      string
	Title        string
	Description  string
	Requirement  string
	HourlyWage   string
	State        string
	ContactEmail string
	UserID       *uuid.UUID
}

// Fields carries the caller-editable part of a job.
type Fields struct {
	Company      string `json:"company"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Requirement  string `json:"requirement"`
	HourlyWage   string `json:"hourlyWage"`
	State        string `json:"state"`
	ContactEmail string `json:"contactEmail"`
}

// New builds a validated job with a fresh id. A zero created time defaults to now.
func New(f Fields, owner *uuid.UUID, created time.Time) (Job, error) {
	if created.IsZero() {
		created = time.Now().UTC()
	}
	j := Job{
		ID:      uuid.New(),
		Created: created,
		UserID:  owner,
	}
	if err := j.Apply(f); err != nil {
		return Job{}, err
	}
	return j, nil
}

// Apply replaces every editable field with the normalized values in f.
// The job is left unchanged when validation fails.
func (j *Job) Apply(f Fields) error {
	f = f.Normalize()
	if err := f.Validate(); err != nil {
		return err
	}
	j.Company = f.Company
	j.Title = f.Title
	j.Description = f.Description
	j.Requirement = f.Requirement
	j.HourlyWage = f.HourlyWage
	j.State = f.State
	j.ContactEmail = f.ContactEmail
	return nil
}

// Normalize trims surrounding whitespace. State is stored verbatim.
func (f Fields) Normalize() Fields {
	f.Company = strings.TrimSpace(f.Company)
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	f.Requirement = strings.TrimSpace(f.Requirement)
	f.HourlyWage = strings.TrimSpace(f.HourlyWage)
	f.ContactEmail = strings.TrimSpace(f.ContactEmail)
	return f
}

func (f Fields) Validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return &ValidationError{Field: FieldTitle, Message: MessageTitleBlank}
	}
	return nil
}

func (j Job) Fields() Fields {
	return Fields{
		Company:      j.Company,
		Title:        j.Title,
		Description:  j.Description,
		Requirement:  j.Requirement,
		HourlyWage:   j.HourlyWage,
		State:        j.State,
		ContactEmail: j.ContactEmail,
	}
}

func (j Job) IsOwnedBy(userID uuid.UUID) bool {
	return j.UserID != nil && userID != uuid.Nil && *j.UserID == userID
}
