package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/oksasatya/go-portfolio-api/internal/domain/entity"
	"github.com/oksasatya/go-portfolio-api/pkg/apperror"
	"github.com/oksasatya/go-portfolio-api/pkg/validation"
)

const validationFailed = "Validation failed"

// SetupValidation registers the enum tags used by request types and hooks
// the validator into gin's binding.
func SetupValidation() {
	validation.RegisterEnum("skillcategory", entity.SkillCategories)
	validation.RegisterEnum("skilllevel", entity.SkillLevels)
	validation.RegisterEnum("personatype", []string{entity.PersonaCurrent, entity.PersonaPast, entity.PersonaGoal})
	validation.RegisterEnum("availability", []string{entity.AvailabilityOpen, entity.AvailabilityConsulting, entity.AvailabilityClosed})
	validation.Init(entity.OptionalSamples()...)
}

func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apperror.Validation(validationFailed, validation.ToDetails(err)...)
	}
	return nil
}

func validate(dst any) error {
	if err := binding.Validator.ValidateStruct(dst); err != nil {
		return apperror.Validation(validationFailed, validation.ToDetails(err)...)
	}
	return nil
}

// pathID parses :id. what names the resource in the error message.
func pathID(c *gin.Context, what string) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.Validation("Invalid " + what + " ID.")
	}
	return id, nil
}

// queryBool reads ?name=true|false; any other present value means false.
func queryBool(c *gin.Context, name string) *bool {
	v, ok := c.GetQuery(name)
	if !ok {
		return nil
	}
	b := v == "true"
	return &b
}

func queryInt64(c *gin.Context, name string) (*int64, error) {
	v, ok := c.GetQuery(name)
	if !ok || v == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, apperror.Validation(validationFailed, apperror.FieldError{Field: name, Message: "must be an integer"})
	}
	return &n, nil
}

func queryInt(c *gin.Context, name string) (int, error) {
	n, err := queryInt64(c, name)
	if err != nil || n == nil {
		return 0, err
	}
	if *n < 0 {
		return 0, apperror.Validation(validationFailed, apperror.FieldError{Field: name, Message: "must be greater than or equal to 0"})
	}
	return int(*n), nil
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
