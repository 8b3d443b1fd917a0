package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sangkips/restaurant-pos/internal/domain/enum"
	"github.com/sangkips/restaurant-pos/pkg/apperror"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("payment_method", func(fl validator.FieldLevel) bool {
		m, ok := fl.Field().Interface().(enum.PaymentMethod)
		return ok && m.IsValid()
	})
	_ = v.RegisterValidation("receipt_type", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(enum.ReceiptType)
		return ok && t.IsValid()
	})
	_ = v.RegisterValidation("doc_type", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(enum.DocType)
		return ok && t.IsValid()
	})

	return v
}

// validateStruct runs the struct tags of s and returns the failures as field errors.
func validateStruct(s interface{}) []apperror.FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []apperror.FieldError{{Field: "", Message: err.Error()}}
	}

	fields := make([]apperror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperror.FieldError{
			Field:   fieldPath(fe.Namespace()),
			Message: fieldMessage(fe),
		})
	}
	return fields
}

// fieldPath strips the root struct name: "CheckoutInput.payments[0].method" -> "payments[0].method".
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s characters", fe.Param())
	case "email":
		return "must be a valid email address"
	case "payment_method":
		return "must be one of: cash, card, yape, plin, bank_transfer, other"
	case "receipt_type":
		return "must be one of: boleta, factura"
	case "doc_type":
		return "must be one of: DNI, RUC"
	}
	return "is invalid"
}
