package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "focolare/internal/errors"
	"focolare/internal/logger"
	"focolare/internal/middleware"
	"focolare/internal/services"
	"focolare/internal/uuid"
)

// getProfileID extracts the authenticated profile ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getProfileID(c *gin.Context) (string, error) {
	profileID, exists := c.Get(middleware.ContextProfileID)
	if !exists {
		return "", apperrors.ErrUnauthorized
	}
	return profileID.(string), nil
}

// requireScope resolves the request's authorization scope from the
// authenticated profile. Handlers that operate on household data call this
// and let an unprovisioned scope fail at the service layer.
func requireScope(c *gin.Context, profiles services.ProfileServicer) (services.Scope, error) {
	profileID, err := getProfileID(c)
	if err != nil {
		return services.Scope{}, err
	}
	return profiles.ScopeFor(profileID)
}

// parsePathID validates a UUID path parameter.
func parsePathID(c *gin.Context, param string) (string, error) {
	id := c.Param(param)
	if !uuid.IsValid(id) {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}
