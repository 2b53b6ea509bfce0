package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeBR(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"FormattedMobile", "+55 (11) 98765-4321", "+5511987654321"},
		{"BareMobile", "11987654321", "+5511987654321"},
		{"CountryWithoutPlus", "5511987654321", "+5511987654321"},
		{"Landline", "(21) 3456-7890", "+552134567890"},
		{"LandlineWithCountry", "552134567890", "+552134567890"},
		{"DDD55Landline", "5532345678", "+555532345678"},
	}

	for _, tt := range tests {
		t.Run("Success_"+tt.name, func(t *testing.T) {
			got, err := NormalizeBR(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	invalid := []struct {
		name string
		raw  string
	}{
		{"Empty", ""},
		{"TooShort", "987654321"},
		{"MobileWithout9", "11887654321"},
		{"DDDWithZero", "10987654321"},
		{"DDDStartsWithZero", "01987654321"},
		{"ForeignCountry", "+1 415 555 0100"},
		{"WrongCountryLongNumber", "4411987654321"},
	}

	for _, tt := range invalid {
		t.Run("Failure_"+tt.name, func(t *testing.T) {
			_, err := NormalizeBR(tt.raw)
			assert.ErrorIs(t, err, ErrInvalidPhone)
		})
	}
}

func TestMask(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "+55*******4321", Mask("+5511987654321"))
	assert.Equal(t, "+55******7890", Mask("+552134567890"))
	assert.Equal(t, "***", Mask("123"))
}

func TestDigits(t *testing.T) {
	assert.Equal(t, "5511987654321", Digits("+5511987654321"))
}
