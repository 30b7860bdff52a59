package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
)

func uintParam(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, &domain.ParseError{Field: name, Value: c.Param(name), Reason: "expected a positive integer"}
	}
	return uint(v), nil
}

// intQuery returns 0 when the query parameter is absent.
func intQuery(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &domain.ParseError{Field: name, Value: raw, Reason: "expected an integer"}
	}
	return v, nil
}
