package dto

import (
	"time"

	jobuc "jobboard/internal/usecase/job"

	"github.com/google/uuid"
)

type JobOwnerResponse struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"displayName"`
}

type JobResponse struct {
	ID                 uuid.UUID         `json:"id"`
	Created            time.Time         `json:"created"`
	Company            string            `json:"company"`
	Title              string            `json:"title"`
	Description        string            `json:"description"`
	Requirement        string            `json:"requirement"`
	HourlyWage         string            `json:"hourlyWage"`
	State              string            `json:"state"`
	ContactEmail       string            `json:"contactEmail"`
	User               *JobOwnerResponse `json:"user"`
	IsCurrentUserOwner bool              `json:"isCurrentUserOwner"`
}

func NewJobResponse(v jobuc.View) JobResponse {
	res := JobResponse{
		ID:                 v.ID,
		Created:            v.Created.UTC(),
		Company:            v.Company,
		Title:              v.Title,
		Description:        v.Description,
		Requirement:        v.Requirement,
		HourlyWage:         v.HourlyWage,
		State:              v.State,
		ContactEmail:       v.ContactEmail,
		IsCurrentUserOwner: v.IsCurrentUserOwner,
	}
	if v.UserID != nil {
		res.User = &JobOwnerResponse{ID: *v.UserID, DisplayName: v.OwnerDisplayName}
	}
	return res
}

func NewJobListResponse(views []jobuc.View) []JobResponse {
	out := make([]JobResponse, 0, len(views))
	for _, v := range views {
		out = append(out, NewJobResponse(v))
	}
	return out
}
