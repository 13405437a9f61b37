package handler

import (
	"errors"
	"strconv"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/job"
	"jobboard/internal/pkg/response"
	jobuc "jobboard/internal/usecase/job"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	MessageJobInvalid    = "Job is invalid"
	MessageJobNotFound   = "No job with that identifier has been found"
	MessageNotAuthorized = "User is not authorized"
	MessageNotLoggedIn   = "User is not logged in"
)

type JobHandler struct {
	uc jobuc.Usecase
}

func NewJobHandler(uc jobuc.Usecase) *JobHandler {
	return &JobHandler{uc: uc}
}

// RegisterRoutes mounts the job resource. Reads accept guests; writes need a
// logged-in user.
func (h *JobHandler) RegisterRoutes(r fiber.Router, auth *middleware.AuthMiddleware) {
	if r == nil || auth == nil {
		return
	}

	r.Get("/", auth.Optional(), h.List)
	r.Post("/", auth.Middleware(), h.Create)
	r.Get("/:jobId", auth.Optional(), h.Get)
	r.Put("/:jobId", auth.Middleware(), h.Update)
	r.Delete("/:jobId", auth.Middleware(), h.Delete)
}

func (h *JobHandler) List(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	views, err := h.uc.List(c.Context(), requester(c), limit, offset)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobListResponse(views))
}

func (h *JobHandler) Create(c fiber.Ctx) error {
	var req job.Fields
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	v, err := h.uc.Create(c.Context(), requester(c), req)
	if err != nil {
		return h.writeError(c, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(v))
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	id, err := jobID(c)
	if err != nil {
		return err
	}

	v, err := h.uc.Get(c.Context(), requester(c), id)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(v))
}

func (h *JobHandler) Update(c fiber.Ctx) error {
	id, err := jobID(c)
	if err != nil {
		return err
	}

	var req job.Fields
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	v, err := h.uc.Update(c.Context(), requester(c), id, req)
	if err != nil {
		return h.writeError(c, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(v))
}

// Delete responds with the job as it was before removal.
func (h *JobHandler) Delete(c fiber.Ctx) error {
	id, err := jobID(c)
	if err != nil {
		return err
	}

	v, err := h.uc.Delete(c.Context(), requester(c), id)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(v))
}

// writeError renders validation failures directly so the field message
// reaches the client unchanged.
func (h *JobHandler) writeError(c fiber.Ctx, err error) error {
	var vErr *job.ValidationError
	if errors.As(err, &vErr) {
		return response.Validation(c, vErr.Field, vErr.Message)
	}
	return mapJobUsecaseError(err)
}

func requester(c fiber.Ctx) jobuc.Requester {
	id, roles := middleware.Identity(c)
	return jobuc.Requester{UserID: id, Roles: roles}
}

func jobID(c fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("jobId"))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, MessageJobInvalid, nil, err)
	}
	return id, nil
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(s)
}

func mapJobUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, job.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, MessageJobNotFound, nil, err)
	case errors.Is(err, jobuc.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, MessageNotLoggedIn, nil, err)
	case errors.Is(err, jobuc.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, MessageNotAuthorized, nil, err)
	case errors.Is(err, jobuc.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
