package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolvePeriodContext(t *testing.T) {
	now := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		now       time.Time
		year      int
		month     int
		wantYear  int
		wantMonth int
		wantEdit  bool
	}{
		{"zero year defaults to today", now, 0, 0, 2025, 6, true},
		{"current year and month is editable", now, 2025, 6, 2025, 6, true},
		{"other month is read only", now, 2025, 5, 2025, 5, false},
		{"other year is read only", now, 2026, 6, 2026, 6, false},
		{"zero month defaults to January", now, 2025, 0, 2025, 1, false},
		{"pre-2024 clamps to January 2024", now, 2023, 5, 2024, 1, true},
		{
			"January before 2024 is editable for bootstrap",
			time.Date(2023, time.December, 15, 0, 0, 0, 0, time.UTC),
			2024, 1, 2024, 1, true,
		},
		{
			"zero year before 2024 clamps forward",
			time.Date(2023, time.December, 15, 0, 0, 0, 0, time.UTC),
			0, 0, 2024, 1, true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			year, month, editable := ResolvePeriodContext(tt.now, tt.year, tt.month)
			assert.Equal(t, tt.wantYear, year)
			assert.Equal(t, tt.wantMonth, month)
			assert.Equal(t, tt.wantEdit, editable)
		})
	}
}
