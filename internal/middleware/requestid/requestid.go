package requestid

import (
	"github.com/gofiber/fiber/v2"
	uuid "github.com/gofrs/uuid"
	"github.com/marknest/api/internal/types"
)

// New assigns a request ID to every request, honoring one supplied by the
// caller, and echoes it on the response.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(types.HeaderRequestID)
		if requestID == "" {
			requestID = uuid.Must(uuid.NewV4()).String()
		}

		c.Locals("request_id", requestID)
		c.Set(types.HeaderRequestID, requestID)

		return c.Next()
	}
}
