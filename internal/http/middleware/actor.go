package middleware

import "github.com/gofiber/fiber/v2"

const (
	// ActorHeader carries the acting user's identity, supplied by the
	// authenticating edge in front of this service.
	ActorHeader = "X-Actor-ID"
	// ActorLocalKey is the key used to store the actor in Fiber's context locals.
	ActorLocalKey = "actor_id"
)

// Actor stores the requesting actor's identity for audit fields (verifier,
// reporter). Requests without the header proceed; handlers that need an
// actor reject them individually.
func Actor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id := c.Get(ActorHeader); id != "" {
			c.Locals(ActorLocalKey, id)
		}
		return c.Next()
	}
}

// ActorFromCtx returns the actor stored by Actor, or "".
func ActorFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(ActorLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
