package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/oksasatya/go-portfolio-api/pkg/apperror"
)

// optional is implemented by partial-update field wrappers.
type optional interface {
	Present() (any, bool)
}

var (
	once  sync.Once
	plain = validator.New()
)

// Init configures the validator used by Gin's binding:
//   - errors are reported under JSON field names;
//   - customTypes (Optional wrappers) are validated through their value,
//     absent or null ones count as empty;
//   - enum tags for request payloads are registered.
func Init(customTypes ...any) {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
		if len(customTypes) > 0 {
			v.RegisterCustomTypeFunc(func(field reflect.Value) any {
				if o, ok := field.Interface().(optional); ok {
					if val, present := o.Present(); present {
						return val
					}
				}
				return nil
			}, customTypes...)
		}
		for tag, allowed := range enums {
			allowed := allowed
			_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
				return slices.Contains(allowed, fl.Field().String())
			})
		}
	})
}

var enums = map[string][]string{}

// RegisterEnum adds a tag accepting exactly the listed strings. Call before Init.
func RegisterEnum(tag string, allowed []string) {
	enums[tag] = allowed
}

// IsHTTPURL reports whether s is an absolute http(s) URL with a host.
func IsHTTPURL(s string) bool {
	return plain.Var(s, "required,http_url") == nil
}

// ToDetails converts binding errors into the field list of a validation envelope.
func ToDetails(err error) []apperror.FieldError {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) {
		return []apperror.FieldError{{Field: "payload", Message: "invalid json"}}
	}
	if errors.As(err, &ute) {
		field := ute.Field
		if field == "" {
			field = "payload"
		}
		return []apperror.FieldError{{Field: field, Message: "must be of type " + ute.Type.String()}}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]apperror.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, apperror.FieldError{Field: fe.Field(), Message: formatFieldError(fe)})
		}
		return out
	}

	return []apperror.FieldError{{Field: "payload", Message: "invalid payload"}}
}

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()

	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "url", "http_url":
		return "must be a valid URL"
	case "datetime":
		return "must match date format " + param
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	case "min", "max", "len":
		return sizeMessage(tag, param, fe.Kind())
	case "gte":
		return "must be greater than or equal to " + param
	case "lte":
		return "must be less than or equal to " + param
	case "gt":
		return "must be greater than " + param
	}
	if allowed, ok := enums[tag]; ok {
		return "must be one of: " + strings.Join(allowed, ", ")
	}
	if param != "" {
		return fmt.Sprintf("validation failed for '%s' with parameter '%s'", tag, param)
	}
	return fmt.Sprintf("validation failed for '%s'", tag)
}

func sizeMessage(tag, param string, kind reflect.Kind) string {
	unit := " characters long"
	switch kind {
	case reflect.Slice, reflect.Array, reflect.Map:
		unit = " items"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		unit = ""
	}
	switch tag {
	case "min":
		return "must be at least " + param + unit
	case "max":
		return "must be at most " + param + unit
	}
	return "must be exactly " + param + unit
}
