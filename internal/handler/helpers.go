package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"bisnispintar/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// decimal.Decimal is a struct; expose it to validator tags as a float.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	// Report field errors under their JSON names.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
}

// bindAndValidate binds the JSON body and runs go-playground/validator tags.
// On failure it writes the error response and returns false.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON tidak valid: "+err.Error()))
		return false
	}
	return validateStruct(c, req)
}

// bindQuery is bindAndValidate for query-string filters.
func bindQuery(c *gin.Context, filter interface{}) bool {
	if err := c.ShouldBindQuery(filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parameter tidak valid: "+err.Error()))
		return false
	}
	return validateStruct(c, filter)
}

func validateStruct(c *gin.Context, v interface{}) bool {
	err := validate.Struct(v)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return false
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
	return false
}
