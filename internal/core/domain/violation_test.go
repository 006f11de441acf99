package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestViolationsError(t *testing.T) {
	vs := Violations{
		NewRateCapViolation("g1", 30_000, 25_000),
		NewDailyHourCapViolation("g2", decimal.NewFromFloat(8.5), decimal.NewFromInt(8)),
	}

	msg := vs.Error()
	assert.Contains(t, msg, "billing guideline violations")
	assert.Contains(t, msg, "RATE_CAP_EXCEEDED")
	assert.Contains(t, msg, "DAILY_HOUR_CAP_EXCEEDED")
}

func TestViolationsErrorsAs(t *testing.T) {
	var err error = Violations{
		{Kind: BlockBillingDetected, GuidelineID: "g1", Detail: "split the entry"},
	}
	wrapped := fmt.Errorf("rejected: %w", err)

	var vs Violations
	assert.True(t, errors.As(wrapped, &vs))
	assert.Len(t, vs, 1)
	assert.Equal(t, BlockBillingDetected, vs[0].Kind)
}
