package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/ErlanBelekov/events-client/internal/domain"
	"github.com/ErlanBelekov/events-client/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const errInternalServer = "Internal server error"

// respondError writes err as a normalized error body. Unknown errors are
// logged and reported as 500 without details.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	var status int
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrEmailTaken):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	default:
		logger.ErrorContext(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, domain.NewAPIError(http.StatusInternalServerError, errInternalServer))
		return
	}
	c.JSON(status, domain.NewAPIError(status, capitalize(err.Error())))
}

// respondBindError reports a rejected request body. Field validation
// failures become one message per field.
func respondBindError(c *gin.Context, err error) {
	apiErr := domain.NewAPIError(http.StatusBadRequest, "Invalid request body")

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		apiErr.Message = make(domain.Message, 0, len(verrs))
		for _, fe := range verrs {
			apiErr.Message = append(apiErr.Message, fieldMessage(fe))
		}
	}
	c.JSON(http.StatusBadRequest, apiErr)
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be an email"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, domain.NewAPIError(http.StatusBadRequest, "id must be a positive integer"))
		return 0, false
	}
	return id, true
}

func currentUser(c *gin.Context) int64 {
	return c.GetInt64(middleware.UserIDKey)
}
