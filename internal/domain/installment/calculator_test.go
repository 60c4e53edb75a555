package installment_test

import (
	"testing"
	"time"

	"Parcelo/internal/domain/installment"
	appErrors "Parcelo/internal/errors"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeScheduleAmounts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		purchaseAmount int64
		count          int
		wantBase       int64
		wantLast       int64
	}{
		{name: "even split", purchaseAmount: 120000, count: 6, wantBase: 20000, wantLast: 20000},
		{name: "remainder goes to last", purchaseAmount: 100000, count: 3, wantBase: 33333, wantLast: 33334},
		{name: "rounds down base", purchaseAmount: 100, count: 3, wantBase: 33, wantLast: 34},
		{name: "half rounds up", purchaseAmount: 101, count: 2, wantBase: 51, wantLast: 50},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			entries, err := installment.ComputeSchedule(tt.purchaseAmount, tt.count, installment.FrequencyMonthly, date(2026, time.January, 15))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(entries) != tt.count {
				t.Fatalf("expected %d entries, got %d", tt.count, len(entries))
			}

			var sum int64
			for i, entry := range entries {
				sum += entry.Amount
				if entry.Number != i+1 {
					t.Errorf("expected entry %d to be numbered %d, got %d", i, i+1, entry.Number)
				}
				if i < tt.count-1 && entry.Amount != tt.wantBase {
					t.Errorf("expected base amount %d at entry %d, got %d", tt.wantBase, i, entry.Amount)
				}
			}

			if last := entries[tt.count-1].Amount; last != tt.wantLast {
				t.Errorf("expected last amount %d, got %d", tt.wantLast, last)
			}

			if sum != tt.purchaseAmount {
				t.Errorf("expected amounts to sum to %d, got %d", tt.purchaseAmount, sum)
			}
		})
	}
}

func TestComputeScheduleValidations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		purchaseAmount int64
		count          int
		frequency      installment.Frequency
		startDate      time.Time
	}{
		{name: "zero amount", purchaseAmount: 0, count: 3, frequency: installment.FrequencyMonthly, startDate: date(2026, time.March, 1)},
		{name: "negative amount", purchaseAmount: -500, count: 3, frequency: installment.FrequencyMonthly, startDate: date(2026, time.March, 1)},
		{name: "single installment", purchaseAmount: 10000, count: 1, frequency: installment.FrequencyMonthly, startDate: date(2026, time.March, 1)},
		{name: "too many installments", purchaseAmount: 10000, count: 37, frequency: installment.FrequencyMonthly, startDate: date(2026, time.March, 1)},
		{name: "invalid frequency", purchaseAmount: 10000, count: 3, frequency: installment.Frequency("DAILY"), startDate: date(2026, time.March, 1)},
		{name: "zero start date", purchaseAmount: 10000, count: 3, frequency: installment.FrequencyMonthly, startDate: time.Time{}},
		{name: "amount too small for count", purchaseAmount: 3, count: 5, frequency: installment.FrequencyMonthly, startDate: date(2026, time.March, 1)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := installment.ComputeSchedule(tt.purchaseAmount, tt.count, tt.frequency, tt.startDate)
			if err == nil {
				t.Fatalf("expected error")
			}

			appErr, ok := appErrors.AsAppError(err)
			if !ok {
				t.Fatalf("expected AppError, got %T", err)
			}
			if appErr.Code != "VALIDATION_ERROR" {
				t.Fatalf("expected validation error, got %s", appErr.Code)
			}
		})
	}
}

func TestComputeScheduleDueDates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		frequency installment.Frequency
		startDate time.Time
		want      []time.Time
	}{
		{
			name:      "weekly",
			frequency: installment.FrequencyWeekly,
			startDate: date(2026, time.March, 10),
			want:      []time.Time{date(2026, time.March, 10), date(2026, time.March, 17), date(2026, time.March, 24)},
		},
		{
			name:      "biweekly",
			frequency: installment.FrequencyBiweekly,
			startDate: date(2026, time.March, 10),
			want:      []time.Time{date(2026, time.March, 10), date(2026, time.March, 24), date(2026, time.April, 7)},
		},
		{
			name:      "monthly",
			frequency: installment.FrequencyMonthly,
			startDate: date(2026, time.March, 10),
			want:      []time.Time{date(2026, time.March, 10), date(2026, time.April, 10), date(2026, time.May, 10)},
		},
		{
			name:      "monthly clamps to last day and recovers",
			frequency: installment.FrequencyMonthly,
			startDate: date(2026, time.January, 31),
			want:      []time.Time{date(2026, time.January, 31), date(2026, time.February, 28), date(2026, time.March, 31)},
		},
		{
			name:      "monthly in leap year",
			frequency: installment.FrequencyMonthly,
			startDate: date(2028, time.January, 30),
			want:      []time.Time{date(2028, time.January, 30), date(2028, time.February, 29), date(2028, time.March, 30)},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			entries, err := installment.ComputeSchedule(30000, len(tt.want), tt.frequency, tt.startDate)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			for i, entry := range entries {
				if !entry.DueDate.Equal(tt.want[i]) {
					t.Errorf("expected due date %s at entry %d, got %s", tt.want[i].Format("2006-01-02"), i, entry.DueDate.Format("2006-01-02"))
				}
			}

			for i := 1; i < len(entries); i++ {
				if !entries[i].DueDate.After(entries[i-1].DueDate) {
					t.Errorf("due dates not strictly increasing: %s then %s", entries[i-1].DueDate, entries[i].DueDate)
				}
			}
		})
	}
}

func TestInstallmentBaseHalfUp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		purchaseAmount int64
		count          int
		want           int64
	}{
		{purchaseAmount: 100, count: 3, want: 33},
		{purchaseAmount: 200, count: 3, want: 67},
		{purchaseAmount: 101, count: 2, want: 51},
		{purchaseAmount: 100000, count: 3, want: 33333},
		{purchaseAmount: 120000, count: 6, want: 20000},
	}

	for _, tt := range tests {
		if got := installment.InstallmentBase(tt.purchaseAmount, tt.count); got != tt.want {
			t.Errorf("expected base %d for %d/%d, got %d", tt.want, tt.purchaseAmount, tt.count, got)
		}
	}
}
