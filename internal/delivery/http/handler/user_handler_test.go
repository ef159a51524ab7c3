package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"profile-api/internal/delivery/http/middleware"
	"profile-api/internal/domain/user"
	useruc "profile-api/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	err   error
	calls int
	patch useruc.Patch
}

func (s *stubService) Create(_ context.Context, in user.User) (user.User, error) {
	s.calls++
	return in, s.err
}

func (s *stubService) List(context.Context) ([]user.User, error) {
	s.calls++
	return nil, s.err
}

func (s *stubService) Get(_ context.Context, id uuid.UUID) (user.User, error) {
	s.calls++
	return user.User{ID: id}, s.err
}

func (s *stubService) Update(_ context.Context, id uuid.UUID, p useruc.Patch) (user.User, error) {
	s.calls++
	s.patch = p
	return user.User{ID: id}, s.err
}

func (s *stubService) Delete(context.Context, uuid.UUID) error {
	s.calls++
	return s.err
}

func newUserApp(svc UserService) *fiber.App {
	errMw := middleware.NewErrorMiddleware(nil)
	app := fiber.New(fiber.Config{ErrorHandler: errMw.Handler()})
	app.Use(errMw.Middleware())
	NewUserHandler(svc).RegisterRoutes(app.Group("/api/users"))
	return app
}

type errorBody struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Details json.RawMessage `json:"details"`
}

func call(t *testing.T, app *fiber.App, method, path, body string) (int, errorBody) {
	t.Helper()

	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out errorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestUserHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"not found", user.ErrNotFound, http.StatusNotFound, "User not found"},
		{"wrapped not found", errors.Join(errors.New("get user"), user.ErrNotFound), http.StatusNotFound, "User not found"},
		{"email taken", user.ErrEmailTaken, http.StatusConflict, "Email already exists"},
		{"validation", user.NewValidationError([]user.Violation{{Field: "name", Message: "Name is required"}}), http.StatusBadRequest, "Name is required"},
		{"store failure", errors.New("dial tcp: connection refused"), http.StatusInternalServerError, "Server Error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubService{err: tc.err}
			app := newUserApp(svc)

			status, body := call(t, app, http.MethodGet, "/api/users/"+uuid.NewString(), "")
			assert.Equal(t, tc.status, status)
			assert.False(t, body.Success)
			assert.Equal(t, tc.msg, body.Error)
			assert.Equal(t, 1, svc.calls)
			if tc.status == http.StatusInternalServerError {
				assert.Empty(t, body.Details)
				assert.NotContains(t, body.Error, "connection refused")
			}
		})
	}
}

func TestUserHandler_MalformedIDSkipsGateway(t *testing.T) {
	svc := &stubService{}
	app := newUserApp(svc)

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		status, body := call(t, app, method, "/api/users/not-a-uuid", "")
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "User not found", body.Error)
	}
	status, _ := call(t, app, http.MethodPut, "/api/users/not-a-uuid", `{"name":"Bob"}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Zero(t, svc.calls)
}

func TestUserHandler_UpdatePassesPresentFieldsOnly(t *testing.T) {
	svc := &stubService{}
	app := newUserApp(svc)

	resp, err := app.Test(func() *http.Request {
		req := httptest.NewRequest(http.MethodPut, "/api/users/"+uuid.NewString(), strings.NewReader(`{"phone":"555-0100","skills":[]}`))
		req.Header.Set("Content-Type", "application/json")
		return req
	}())
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NotNil(t, svc.patch.Phone)
	assert.Equal(t, "555-0100", *svc.patch.Phone)
	assert.Nil(t, svc.patch.Name)
	assert.Nil(t, svc.patch.Experiences)
	require.NotNil(t, svc.patch.Skills)
	assert.Empty(t, *svc.patch.Skills)
}

func TestUserHandler_InvalidDateIsValidationFailure(t *testing.T) {
	svc := &stubService{}
	app := newUserApp(svc)

	status, body := call(t, app, http.MethodPost, "/api/users", `{
		"name": "Ann",
		"email": "ann@x.com",
		"education": [{"institution":"MIT","degree":"BSc","fieldOfStudy":"CS","startDate":"yesterday"}]
	}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.NotEmpty(t, body.Details)
	assert.Zero(t, svc.calls)
}
