package response

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"taskhub-backend/pkg/apperror"
)

type errorBody struct {
	Code   string              `json:"code"`
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields,omitempty"`
}

func StatusOf(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation:
		return http.StatusBadRequest
	case apperror.KindAuthentication:
		return http.StatusUnauthorized
	case apperror.KindAuthorization:
		return http.StatusForbidden
	case apperror.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error aborts the request with the JSON rendering of err. Errors that are
// not *apperror.Error are reported as a bare 500.
func Error(c *gin.Context, err error) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		appErr = apperror.Internal(err)
	}

	c.AbortWithStatusJSON(StatusOf(appErr.Kind), errorBody{
		Code:   appErr.Code,
		Error:  appErr.Message,
		Fields: appErr.Fields,
	})
}

// BindError reports a request body that failed to bind or validate.
func BindError(c *gin.Context, err error) {
	Error(c, BindingError(err))
}

// BindingError converts a ShouldBind failure into a validation error.
func BindingError(err error) *apperror.Error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.Validation("invalid request body", nil)
	}

	fields := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = append(fields[fe.Field()], fieldMessage(fe))
	}
	return apperror.Validation("validation failed", fields)
}

// PartialBody returns a decoder for a PATCH body. Nothing is read until
// the decoder runs. An empty body leaves dst untouched.
func PartialBody(c *gin.Context) func(dst any) error {
	return func(dst any) error {
		err := c.ShouldBindJSON(dst)
		if err == nil || errors.Is(err, io.EOF) {
			return nil
		}
		return BindingError(err)
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "email":
		return "Enter a valid email address."
	default:
		return fmt.Sprintf("Failed on the %q rule.", fe.Tag())
	}
}

var registerOnce sync.Once

// RegisterJSONFieldNames makes validation errors report json field names.
func RegisterJSONFieldNames() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
}
