package dto

import (
	"encoding/json"
	errs "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
)

// RegisterValidators configura o validator do gin: nomes de campo pelas tags json/form
// e a regra tipo_transacao.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	v.RegisterTagNameFunc(fieldName)
	return v.RegisterValidation("tipo_transacao", func(fl validator.FieldLevel) bool {
		_, err := entities.ParseTransactionType(fl.Field().String())
		return err == nil
	})
}

func fieldName(field reflect.StructField) string {
	for _, tag := range []string{"json", "form", "uri"} {
		name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return field.Name
}

// ValidationErrors traduz o erro de binding em erros por campo
func ValidationErrors(c *gin.Context, err error) []ValidationError {
	var verrs validator.ValidationErrors
	if errs.As(err, &verrs) {
		result := make([]ValidationError, 0, len(verrs))
		for _, fe := range verrs {
			result = append(result, ValidationError{
				Field:   fe.Field(),
				Message: fieldMessage(c, fe),
				Tag:     fe.Tag(),
			})
		}
		return result
	}

	var typeErr *json.UnmarshalTypeError
	if errs.As(err, &typeErr) {
		return []ValidationError{{
			Field:   typeErr.Field,
			Message: T(c, "validation.invalid", map[string]interface{}{"Field": typeErr.Field}),
			Tag:     "type",
		}}
	}

	return []ValidationError{{
		Field:   "body",
		Message: T(c, "validation.malformed"),
		Tag:     "malformed",
	}}
}

func fieldMessage(c *gin.Context, fe validator.FieldError) string {
	params := map[string]interface{}{"Field": fe.Field(), "Param": fe.Param()}
	key := "validation." + fe.Tag()
	if msg := T(c, key, params); msg != key {
		return msg
	}
	return T(c, "validation.invalid", params)
}
