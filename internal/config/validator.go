package config

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/darkkaiser/linkcompra-server/internal/pkg/errors"
	"github.com/darkkaiser/linkcompra-server/pkg/validation"
)

// 예: 123456:ABC-DEF1234ghIkl-zyx57W2v1u123ew11
var telegramBotTokenRegex = regexp.MustCompile(`^\d{3,20}:[a-zA-Z0-9_-]{30,50}$`)

// newValidator 에러 메시지에 JSON 필드명을 쓰도록 설정하고 커스텀 태그를 등록합니다.
func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "cors_origin", func(fl validator.FieldLevel) bool {
		return validation.ValidateCORSOrigin(fl.Field().String()) == nil
	})
	mustRegister(v, "telegram_bot_token", func(fl validator.FieldLevel) bool {
		return telegramBotTokenRegex.MatchString(fl.Field().String())
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("초기화 치명적 오류: '%s' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", tag, err))
	}
}

// checkStruct 첫 번째 검증 실패 항목을 contextName과 함께 사람이 읽을 수 있는 에러로 바꿉니다.
func checkStruct(v *validator.Validate, s any, contextName string) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperrors.Wrapf(err, apperrors.InvalidInput, "%s 유효성 검증에 실패했습니다", contextName)
	}

	first := verrs[0]
	switch first.Tag() {
	case "cors_origin":
		return apperrors.Newf(apperrors.InvalidInput, "%s: CORS Origin 형식이 올바르지 않습니다: '%v' (형식: Scheme://Host[:Port])", contextName, first.Value())
	case "telegram_bot_token":
		return apperrors.Newf(apperrors.InvalidInput, "%s: 텔레그램 봇 토큰 형식이 올바르지 않습니다", contextName)
	case "required_if":
		return apperrors.Newf(apperrors.InvalidInput, "%s: %s 항목은 필수입니다 (조건: %s)", contextName, first.Namespace(), first.Param())
	}
	return apperrors.Newf(apperrors.InvalidInput, "%s의 설정이 올바르지 않습니다: %s (조건: %s=%s)", contextName, first.Namespace(), first.Tag(), first.Param())
}

// checkUniqueField 슬라이스 요소(fieldName이 비어 있으면 요소 자체)가 유일한지 검사합니다.
func checkUniqueField(v *validator.Validate, data any, fieldName, contextName string) error {
	tag := "unique"
	if fieldName != "" {
		tag += "=" + fieldName
	}
	if err := v.Var(data, tag); err != nil {
		return apperrors.Newf(apperrors.InvalidInput, "중복된 %s ID가 존재합니다", contextName)
	}
	return nil
}
