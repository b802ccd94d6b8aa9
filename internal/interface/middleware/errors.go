package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-api/pkg/apperror"
	"github.com/oksasatya/go-portfolio-api/pkg/response"
)

// ErrorResponder turns returned errors into the JSON error envelope.
// Typed application errors keep their status and message. Anything else
// is a 500 that gets logged. Outside production its message and a stack
// trace are sent along.
type ErrorResponder struct {
	Production bool
	Logger     *logrus.Logger
}

func NewErrorResponder(env string, logger *logrus.Logger) *ErrorResponder {
	return &ErrorResponder{Production: env == "production", Logger: logger}
}

func (e *ErrorResponder) Write(c *gin.Context, err error) {
	if ae, ok := apperror.As(err); ok {
		if !e.Production && ae.Err != nil {
			e.entry(c).WithError(ae.Err).Debug(ae.Message)
		}
		response.AppError(c, ae)
		return
	}
	e.serverError(c, err, string(debug.Stack()))
}

func (e *ErrorResponder) serverError(c *gin.Context, err error, stack string) {
	e.entry(c).WithError(err).Error("request failed")
	body := response.ErrorBody{Error: response.ServerErrorMessage, Code: apperror.CodeServer}
	if !e.Production {
		body.Error = err.Error()
		body.Stack = stack
	}
	response.Error(c, http.StatusInternalServerError, body)
}

func (e *ErrorResponder) entry(c *gin.Context) *logrus.Entry {
	fields := logrus.Fields{
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"request_id": c.GetString("request_id"),
	}
	if uid, ok := c.Get("user_id"); ok {
		fields["user_id"] = uid
	}
	return e.Logger.WithFields(fields)
}

// Recovery answers panics with the 500 envelope.
func (e *ErrorResponder) Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				if r == http.ErrAbortHandler {
					panic(r)
				}
				e.serverError(c, fmt.Errorf("panic: %v", r), string(debug.Stack()))
			}
		}()
		c.Next()
	}
}

// NotFound answers unknown routes.
func (e *ErrorResponder) NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.AppError(c, apperror.NotFound("Route not found"))
	}
}
