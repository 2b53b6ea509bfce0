// Package handler API 핸들러가 공통으로 사용하는 요청 검증기를 제공합니다.
package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/darkkaiser/linkcompra-server/internal/pkg/money"
	"github.com/darkkaiser/linkcompra-server/internal/pkg/phone"
	"github.com/darkkaiser/linkcompra-server/internal/service/api/httputil"
)

// tagBRPhone 브라질 전화번호 형식 검증 태그
const tagBRPhone = "br_phone"

// RequestValidator echo.Validator 구현체입니다. e.Validator에 등록하면 c.Validate(req)로 호출됩니다.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator 커스텀 태그와 타입이 등록된 검증기를 생성합니다.
func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// label 태그를 필드명으로 사용하여 에러 메시지에 사용자 친화적인 이름이 나오도록 합니다.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if label := fld.Tag.Get("label"); label != "" {
			return label
		}
		if name, _, _ := strings.Cut(fld.Tag.Get("json"), ","); name != "" && name != "-" {
			return name
		}
		return fld.Name
	})

	// money.Amount는 숫자로 비교합니다. (예: validate:"gt=0")
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if a, ok := field.Interface().(money.Amount); ok {
			return a.Float64()
		}
		return nil
	}, money.Amount{})

	if err := v.RegisterValidation(tagBRPhone, func(fl validator.FieldLevel) bool {
		_, err := phone.NormalizeBR(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(fmt.Sprintf("검증 태그 등록 실패 (%s): %v", tagBRPhone, err))
	}

	return &RequestValidator{validate: v}
}

// Validate 구조체의 validate 태그를 검사하고, 실패하면 첫 번째 위반 항목을 400 에러로 반환합니다.
func (rv *RequestValidator) Validate(i any) error {
	if err := rv.validate.Struct(i); err != nil {
		return httputil.NewBadRequestError(FormatValidationError(err))
	}
	return nil
}

// FormatValidationError validator 에러를 포르투갈어 메시지로 변환합니다.
// 여러 검증 에러가 있을 경우 첫 번째 에러만 사용합니다.
func FormatValidationError(err error) string {
	if err == nil {
		return ""
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err.Error()
	}

	return formatFieldError(validationErrors[0])
}

func formatFieldError(fieldErr validator.FieldError) string {
	field := fieldErr.Field()
	isString := fieldErr.Kind() == reflect.String

	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("O campo %s é obrigatório", field)
	case "min":
		if isString {
			return fmt.Sprintf("O campo %s deve ter pelo menos %s caracteres", field, fieldErr.Param())
		}
		return fmt.Sprintf("O campo %s deve ser no mínimo %s", field, fieldErr.Param())
	case "max":
		if isString {
			return fmt.Sprintf("O campo %s deve ter no máximo %s caracteres", field, fieldErr.Param())
		}
		return fmt.Sprintf("O campo %s deve ser no máximo %s", field, fieldErr.Param())
	case "gt":
		return fmt.Sprintf("O campo %s deve ser maior que %s", field, fieldErr.Param())
	case tagBRPhone:
		return fmt.Sprintf("O campo %s deve ser um telefone brasileiro válido", field)
	default:
		return fmt.Sprintf("O campo %s é inválido (%s)", field, fieldErr.Tag())
	}
}
