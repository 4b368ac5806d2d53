// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/smartbiz/backend/internal/integration/entrypoint/dto"
)

const internalErrorMessage = "An internal error occurred"

// respondInternal logs err and answers with a generic 500.
func respondInternal(ctx *gin.Context, err error) {
	slog.Error("Request failed",
		"method", ctx.Request.Method,
		"path", ctx.FullPath(),
		"error", err,
	)
	ctx.JSON(http.StatusInternalServerError, dto.Failure(internalErrorMessage, ""))
}

func respondBadRequest(ctx *gin.Context, message, code string) {
	ctx.JSON(http.StatusBadRequest, dto.Failure(message, code))
}

// parseID parses a UUID, reporting ok=false after writing a 400 response.
func parseID(ctx *gin.Context, raw, field, code string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		respondBadRequest(ctx, "Invalid "+field, code)
		return uuid.Nil, false
	}
	return id, true
}
