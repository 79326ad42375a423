// Package validation turns gin binding failures into readable messages keyed
// by JSON field names.
package validation

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonName)
	}
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

// Messages lists one message per failed field. Errors that are not
// validation failures come back as a single message.
func Messages(err error) []string {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, message(fe))
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []string{fmt.Sprintf("%s must be a %s", typeErr.Field, typeErr.Type.Kind())}
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || err.Error() == "EOF" {
		return []string{"request body is not valid JSON"}
	}
	return []string{err.Error()}
}

// Message joins Messages with ", ".
func Message(err error) string {
	return strings.Join(Messages(err), ", ")
}

func message(fe validator.FieldError) string {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min", "gte":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must have at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must have at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "email":
		return field + " must be a valid email address"
	case "url":
		return field + " must be a valid URL"
	}
	return field + " is invalid"
}

// fieldPath drops the top-level struct name from the namespace, so
// "inquiryInput.dimensions.H" becomes "dimensions.H".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}
