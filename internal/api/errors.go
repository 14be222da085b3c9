package api

import (
	"net/http"

	"backoffice-service/internal/apperr"
	"backoffice-service/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorBody is the JSON shape every handler error resolves to.
type ErrorBody struct {
	Status           int                `json:"status"`
	Error            string             `json:"error"`
	Message          string             `json:"message"`
	Path             string             `json:"path"`
	ValidationErrors []apperr.FieldError `json:"validationErrors,omitempty"`
}

// handleError maps a service error onto the HTTP status and error body.
// Internal details never reach the client; they are logged server-side.
func handleError(c *gin.Context, err error) {
	var appErr *apperr.Error
	kind := apperr.KindOf(err)

	body := ErrorBody{
		Status:  kind.HTTPStatus(),
		Error:   kind.Label(),
		Message: err.Error(),
		Path:    c.Request.URL.Path,
	}
	if e, ok := err.(*apperr.Error); ok {
		appErr = e
		body.ValidationErrors = e.Fields
	}

	if kind == apperr.KindInternal {
		util.GetLogger().Error("Request failed",
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Error(err))
		body.Message = "internal server error"
	} else if appErr != nil {
		body.Message = appErr.Message
	}

	c.AbortWithStatusJSON(body.Status, body)
}

func respondNotFound(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusNotFound, ErrorBody{
		Status:  http.StatusNotFound,
		Error:   "Not Found",
		Message: message,
		Path:    c.Request.URL.Path,
	})
}
