// Package httpresp writes the success bodies of the JSON API. Errors go
// through httperr.
package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Page[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Created answers a successful booking or registration.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// List renders a full, unpaged listing. A nil slice is sent as [].
func List[T any](c *gin.Context, data []T) {
	if data == nil {
		data = []T{}
	}
	c.JSON(http.StatusOK, Page[T]{Data: data, Total: len(data)})
}
