package handler

import (
	"context"
	"errors"

	"profile-api/internal/delivery/http/dto"
	"profile-api/internal/delivery/http/middleware"
	"profile-api/internal/domain/user"
	"profile-api/internal/pkg/response"
	useruc "profile-api/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// UserService is the persistence gateway the controllers call. Each
// handler makes exactly one call on it.
type UserService interface {
	Create(ctx context.Context, in user.User) (user.User, error)
	List(ctx context.Context) ([]user.User, error)
	Get(ctx context.Context, id uuid.UUID) (user.User, error)
	Update(ctx context.Context, id uuid.UUID, p useruc.Patch) (user.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserHandler struct {
	svc UserService
}

func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/:id", h.Get)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}

func (h *UserHandler) Create(c fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	in, err := req.ToDomain()
	if err != nil {
		return userError(err)
	}

	created, err := h.svc.Create(c.Context(), in)
	if err != nil {
		return userError(err)
	}
	return response.Success(c, fiber.StatusCreated, created)
}

func (h *UserHandler) List(c fiber.Ctx) error {
	items, err := h.svc.List(c.Context())
	if err != nil {
		return userError(err)
	}
	return response.List(c, fiber.StatusOK, items, len(items))
}

func (h *UserHandler) Get(c fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	u, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return userError(err)
	}
	return response.Success(c, fiber.StatusOK, u)
}

func (h *UserHandler) Update(c fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateUserRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	patch, err := req.ToPatch()
	if err != nil {
		return userError(err)
	}

	u, err := h.svc.Update(c.Context(), id, patch)
	if err != nil {
		return userError(err)
	}
	return response.Success(c, fiber.StatusOK, u)
}

func (h *UserHandler) Delete(c fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.svc.Delete(c.Context(), id); err != nil {
		return userError(err)
	}
	return response.Success(c, fiber.StatusOK, fiber.Map{})
}

// bindJSON leaves out untouched when the body is empty, so a bare request
// behaves like "{}".
func bindJSON(c fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.Bind().JSON(out); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageInvalidPayload, nil, err)
	}
	return nil
}

// pathID treats a malformed id like an unknown one.
func pathID(c fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, user.ErrNotFound)
	}
	return id, nil
}

// userError maps every failure the gateway can produce onto an HTTP
// status. Anything unrecognised is a 500 with no details.
func userError(err error) error {
	var verr *user.ValidationError
	switch {
	case errors.As(err, &verr):
		return middleware.NewAppError(fiber.StatusBadRequest, verr.Error(), verr.Violations, err)
	case errors.Is(err, user.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, user.ErrEmailTaken):
		return middleware.NewAppError(fiber.StatusConflict, "Email already exists", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
