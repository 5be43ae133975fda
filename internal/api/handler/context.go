package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/freelanceflow/marketplace-api/internal/api/middleware"
	"github.com/freelanceflow/marketplace-api/internal/core/domain"
)

const (
	defaultSkip  = 0
	defaultLimit = 100
)

// ctxActor extracts the account injected by the Auth middleware and performs
// a fast-fail check before any service call: presence proves the middleware
// ran on this route.
func ctxActor(c echo.Context) (*domain.User, error) {
	actor, _ := c.Get(middleware.ActorKey).(*domain.User)
	if actor == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Could not validate credentials")
	}
	return actor, nil
}

// pagination reads the skip/limit query parameters, falling back to the
// defaults on absent, malformed, or negative values.
func pagination(c echo.Context) (skip, limit int) {
	skip = queryInt(c, "skip", defaultSkip)
	limit = queryInt(c, "limit", defaultLimit)
	if skip < 0 {
		skip = defaultSkip
	}
	if limit < 0 {
		limit = defaultLimit
	}
	return skip, limit
}

func queryInt(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
