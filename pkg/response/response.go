package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-portfolio-api/pkg/apperror"
)

// ServerErrorMessage replaces the message of unexpected errors in production.
const ServerErrorMessage = "Server Error. Please try again later."

// ErrorBody is the envelope of every failed request.
type ErrorBody struct {
	Error  string                `json:"error"`
	Code   string                `json:"code"`
	Errors []apperror.FieldError `json:"errors,omitempty"`
	Stack  string                `json:"stack,omitempty"`
}

// DataBody wraps resources that are returned under "data".
type DataBody[T any] struct {
	Data T `json:"data"`
}

// JSON writes v as the bare response body.
func JSON(ctx *gin.Context, status int, v any) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, v)
}

// Data writes {"data": v}.
func Data[T any](ctx *gin.Context, status int, v T) {
	JSON(ctx, status, DataBody[T]{Data: v})
}

func NoContent(ctx *gin.Context) {
	ctx.Status(http.StatusNoContent)
}

// Error writes the envelope and aborts the handler chain.
func Error(ctx *gin.Context, status int, body ErrorBody) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.AbortWithStatusJSON(status, body)
}

// AppError writes a typed application error.
func AppError(ctx *gin.Context, e *apperror.Error) {
	Error(ctx, e.Status, ErrorBody{Error: e.Message, Code: e.Code, Errors: e.Details})
}
