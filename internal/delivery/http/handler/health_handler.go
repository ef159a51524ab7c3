package handler

import (
	"time"

	"github.com/gofiber/fiber/v3"
)

type healthResponse struct {
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime"`
}

// HealthHandler is a plain liveness probe. It does not touch the database
// and does not log.
type HealthHandler struct {
	started time.Time
	now     func() time.Time
}

func NewHealthHandler(started time.Time) *HealthHandler {
	return &HealthHandler{started: started, now: time.Now}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	now := h.now()
	uptime := now.Sub(h.started).Seconds()
	if uptime < 0 {
		uptime = 0
	}
	return c.Status(fiber.StatusOK).JSON(healthResponse{
		Status:    "OK",
		Timestamp: now.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Uptime:    uptime,
	})
}
