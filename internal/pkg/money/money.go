// Package money 헤알(BRL) 금액을 decimal 기반으로 다룹니다.
//
// 부동소수점 오차를 피하기 위해 모든 금액은 소수점 둘째 자리로 반올림된 decimal.Decimal로 보관하며,
// JSON/BSON에는 "1234.56" 형태의 문자열로 기록합니다.
package money

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	apperrors "github.com/darkkaiser/linkcompra-server/internal/pkg/errors"
)

const scale = 2

// brPrinter pt-BR 자릿수 구분(.)과 소수점(,)으로 숫자를 씁니다.
var brPrinter = message.NewPrinter(language.BrazilianPortuguese)

// Amount 소수점 둘째 자리까지의 금액입니다. 제로 값은 0입니다.
type Amount struct {
	d decimal.Decimal
}

var Zero = Amount{}

func New(d decimal.Decimal) Amount {
	return Amount{d: d.Round(scale)}
}

func NewFromFloat(f float64) Amount {
	return New(decimal.NewFromFloat(f))
}

// NewFromCents 센타부(1/100) 단위 정수로 금액을 만듭니다.
func NewFromCents(cents int64) Amount {
	return Amount{d: decimal.New(cents, -scale)}
}

// Parse "1234.56", "1234,56", "R$ 1.234,56" 형식을 모두 허용합니다.
//
// 쉼표가 있거나 "R$" 접두사가 있으면 브라질 표기(점=천 단위, 쉼표=소수점)로 해석합니다.
// 그 외에는 점을 소수점으로 보되, 점이 둘 이상이거나 "1.299"처럼 점 뒤에 정확히 세 자리가 오면
// 천 단위 구분자로 간주합니다. 소수 셋째 자리가 있는 가격은 없기 때문입니다.
func Parse(s string) (Amount, error) {
	raw := s
	s = strings.TrimSpace(s)

	brazilian := false
	if rest, ok := strings.CutPrefix(s, "R$"); ok {
		s, brazilian = rest, true
	}
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '\t':
			return -1
		}
		return r
	}, s)

	if strings.Contains(s, ",") {
		brazilian = true
	}
	if brazilian {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	} else if strings.Count(s, ".") > 1 || isThousandsGrouped(s) {
		s = strings.ReplaceAll(s, ".", "")
	}

	if s == "" {
		return Zero, apperrors.Newf(apperrors.ParsingFailed, "금액 문자열이 비어 있습니다 (input=%q)", raw)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, apperrors.Wrapf(err, apperrors.ParsingFailed, "금액 형식이 올바르지 않습니다 (input=%q)", raw)
	}
	return New(d), nil
}

// isThousandsGrouped 점이 하나이고 "1.299", "12.500"처럼 0이 아닌 1~3자리 뒤에 정확히 세 자리가 오는지 확인합니다.
func isThousandsGrouped(s string) bool {
	s = strings.TrimPrefix(s, "-")
	intPart, frac, ok := strings.Cut(s, ".")
	if !ok || len(frac) != 3 || len(intPart) == 0 || len(intPart) > 3 || intPart[0] == '0' {
		return false
	}
	for _, r := range intPart + frac {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// MustParse 테스트와 상수 초기화 전용입니다.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Amount) Decimal() decimal.Decimal { return a.d }

func (a Amount) Float64() float64 {
	f, _ := a.d.Float64()
	return f
}

func (a Amount) IsZero() bool { return a.d.IsZero() }

func (a Amount) IsPositive() bool { return a.d.IsPositive() }

func (a Amount) LessThan(b Amount) bool { return a.d.LessThan(b.d) }

func (a Amount) Equal(b Amount) bool { return a.d.Equal(b.d) }

// Cmp a < b 이면 -1, 같으면 0, 크면 1입니다.
func (a Amount) Cmp(b Amount) int { return a.d.Cmp(b.d) }

func (a Amount) Sub(b Amount) Amount { return New(a.d.Sub(b.d)) }

// String "1234.56"
func (a Amount) String() string { return a.d.StringFixed(scale) }

// FormatBRL "R$ 1.234,56"
func (a Amount) FormatBRL() string {
	sign := ""
	if a.d.IsNegative() {
		sign = "-"
	}
	f, _ := a.d.Abs().Float64()
	return sign + "R$ " + brPrinter.Sprint(number.Decimal(f, number.Scale(scale)))
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON 문자열과 숫자 표기를 모두 받습니다.
func (a *Amount) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = Zero
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		s = string(data)
	}

	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func (a Amount) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bsontype.String, bsoncore.AppendString(nil, a.String()), nil
}

func (a *Amount) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	v := bsoncore.Value{Type: t, Data: data}

	switch t {
	case bsontype.String:
		parsed, err := Parse(v.StringValue())
		if err != nil {
			return err
		}
		*a = parsed
	case bsontype.Double:
		*a = NewFromFloat(v.Double())
	case bsontype.Int32:
		*a = New(decimal.NewFromInt32(v.Int32()))
	case bsontype.Int64:
		*a = New(decimal.NewFromInt(v.Int64()))
	case bsontype.Null:
		*a = Zero
	default:
		return apperrors.Newf(apperrors.ParsingFailed, "금액으로 변환할 수 없는 BSON 타입입니다 (type=%s)", t)
	}
	return nil
}

// Min 두 금액 중 작은 값을 반환합니다.
func Min(a, b Amount) Amount {
	if b.LessThan(a) {
		return b
	}
	return a
}
