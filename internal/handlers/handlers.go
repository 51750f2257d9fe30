// Package handlers implements the HTTP API. Each domain area gets its own
// handler struct carrying only the dependencies it uses; routing lives in
// internal/transport/http.
package handlers

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"photofolio/internal/events"
	"photofolio/internal/logging"
)

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func errorResponse(c echo.Context, code int, msg string) error {
	return c.JSON(code, Response{Status: "error", Message: msg})
}

// publish sends a domain event, best effort: failures are logged on the
// request logger and never fail the request. A nil publisher (events
// disabled) is a no-op.
func publish(c echo.Context, p events.Publisher, topic, key string, event map[string]any) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish failed",
			"topic", topic, "error", err)
	}
}

// pageMeta is the envelope for paginated list responses.
func pageMeta(page, size int, total int64, offset int) map[string]any {
	return map[string]any{
		"page":        page,
		"size":        size,
		"total":       total,
		"total_pages": (total + int64(size) - 1) / int64(size),
		"has_prev":    page > 1,
		"has_next":    int64(offset+size) < total,
	}
}
