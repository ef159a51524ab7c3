package response

import "github.com/gofiber/fiber/v3"

type Envelope struct {
	Success bool        `json:"success"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data"`
}

type ErrorEnvelope struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

const (
	MessageBadRequest          = "Bad request"
	MessageInvalidPayload      = "Invalid request payload"
	MessageNotFound            = "Resource not found"
	MessageConflict            = "Duplicate field value entered"
	MessageInternalServerError = "Server Error"
)

func Success(c fiber.Ctx, status int, data interface{}) error {
	return c.Status(normalizeStatus(status)).JSON(Envelope{Success: true, Data: data})
}

// List always reports count, including zero.
func List(c fiber.Ctx, status int, data interface{}, count int) error {
	return c.Status(normalizeStatus(status)).JSON(Envelope{Success: true, Count: &count, Data: data})
}

func Error(c fiber.Ctx, status int, message string, details interface{}) error {
	st := normalizeStatus(status)
	if message == "" {
		message = defaultMessageForStatus(st)
	}
	return c.Status(st).JSON(ErrorEnvelope{Success: false, Error: message, Details: details})
}

func normalizeStatus(status int) int {
	if status < 100 || status > 599 {
		return fiber.StatusInternalServerError
	}
	return status
}

func defaultMessageForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return MessageBadRequest
	case fiber.StatusNotFound:
		return MessageNotFound
	case fiber.StatusConflict:
		return MessageConflict
	default:
		if status >= 500 {
			return MessageInternalServerError
		}
		return MessageBadRequest
	}
}
