package lead

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkkaiser/linkcompra-server/internal/pkg/money"
)

// TestLead_ShouldNotify 알림 발송 조건(활성, 목표가 미만, 쿨다운)을 검증합니다.
func TestLead_ShouldNotify(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	notifiedAt := func(ago time.Duration) *time.Time {
		at := now.Add(-ago)
		return &at
	}

	tests := []struct {
		name     string
		lead     Lead
		current  string
		expected bool
	}{
		{"NeverNotified_BelowTarget", Lead{Active: true, TargetPrice: money.MustParse("500")}, "499.99", true},
		{"EqualToTarget", Lead{Active: true, TargetPrice: money.MustParse("500")}, "500.00", false},
		{"AboveTarget", Lead{Active: true, TargetPrice: money.MustParse("500")}, "510", false},
		{"Inactive", Lead{Active: false, TargetPrice: money.MustParse("500")}, "100", false},
		{"ZeroPrice", Lead{Active: true, TargetPrice: money.MustParse("500")}, "0", false},
		{"WithinCooldown", Lead{Active: true, TargetPrice: money.MustParse("500"), LastNotifiedAt: notifiedAt(23 * time.Hour)}, "400", false},
		{"ExactlyCooldown", Lead{Active: true, TargetPrice: money.MustParse("500"), LastNotifiedAt: notifiedAt(24 * time.Hour)}, "400", true},
		{"AfterCooldown", Lead{Active: true, TargetPrice: money.MustParse("500"), LastNotifiedAt: notifiedAt(48 * time.Hour)}, "400", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.lead.ShouldNotify(money.MustParse(tt.current), now, DefaultCooldown)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLead_MarkNotified(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	l := &Lead{Active: true, TargetPrice: money.MustParse("500"), NotifyCount: 2}

	l.MarkNotified(money.MustParse("449.90"), now)

	require.NotNil(t, l.LastNotifiedAt)
	require.NotNil(t, l.LastNotifiedPrice)
	assert.Equal(t, now, *l.LastNotifiedAt)
	assert.Equal(t, "449.90", l.LastNotifiedPrice.String())
	assert.Equal(t, 3, l.NotifyCount)
	assert.Equal(t, now, l.UpdatedAt)

	assert.False(t, l.ShouldNotify(money.MustParse("400"), now.Add(time.Hour), DefaultCooldown))
}
