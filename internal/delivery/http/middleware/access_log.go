package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	HeaderRequestID = "X-Request-ID"
	CtxRequestIDKey = "request_id"
)

type AccessLogMiddleware struct {
	logger *log.Logger
	skip   map[string]bool
}

// NewAccessLogMiddleware logs one line per request. Paths in skip are served
// but not logged.
func NewAccessLogMiddleware(logger *log.Logger, skip ...string) *AccessLogMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	m := &AccessLogMiddleware{logger: logger, skip: make(map[string]bool, len(skip))}
	for _, p := range skip {
		m.skip[p] = true
	}
	return m
}

func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(HeaderRequestID, rid)
		c.Locals(CtxRequestIDKey, rid)

		err := c.Next()

		if m.skip[c.Path()] {
			return err
		}

		userID, _ := Identity(c)
		user := "guest"
		if userID != uuid.Nil {
			user = userID.String()
		}

		m.logger.Printf(
			"[HTTP] rid=%s ip=%s method=%s path=%s status=%d latency=%s user=%s resp_bytes=%d ua=%q",
			rid, c.IP(), c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start),
			user, len(c.Response().Body()), c.Get("User-Agent"),
		)

		return err
	}
}
