package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Juanarielok/prototipoR1-backend/internal/apierror"
	"github.com/Juanarielok/prototipoR1-backend/internal/middleware"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.NewValidation("Invalid JSON body"))
		return false
	}
	if err := validate.Struct(req); err != nil {
		var ves validator.ValidationErrors
		if errors.As(err, &ves) && len(ves) > 0 {
			fe := ves[0]
			c.JSON(http.StatusBadRequest, apierror.NewValidation("Invalid field: "+fe.Field()))
			return false
		}
		c.JSON(http.StatusBadRequest, apierror.NewValidation("Invalid request body"))
		return false
	}
	return true
}

// respondError maps service errors onto the error taxonomy. Anything that is
// not an *apierror.Error is a programming error and becomes a plain 500.
func respondError(c *gin.Context, err error) {
	var apiErr *apierror.Error
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status(), apiErr)
		return
	}
	e := apierror.NewInternal()
	c.JSON(e.Status(), e)
}

// parseIDParam reads the :id path param as a UUID, writing the 400 itself.
func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.NewValidation("Invalid id"))
		return uuid.Nil, false
	}
	return id, true
}

// claimsUserID extracts the authenticated user id from the JWT claims.
func claimsUserID(c *gin.Context) (uuid.UUID, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		e := apierror.NewUnauthorized("Authentication required")
		c.JSON(e.Status(), e)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(claims.ID)
	if err != nil {
		e := apierror.NewUnauthorized("Invalid or expired token")
		c.JSON(e.Status(), e)
		return uuid.Nil, false
	}
	return id, true
}
