package installment

import (
	"time"

	appErrors "Parcelo/internal/errors"

	"github.com/shopspring/decimal"
)

const (
	MinInstallments = 2
	MaxInstallments = 36
)

type ScheduleEntry struct {
	Number  int
	DueDate time.Time
	Amount  int64
}

// ComputeSchedule splits purchaseAmount (minor units) into count dated
// installments. Installments 1..count-1 carry the rounded base amount; the
// last one absorbs the whole rounding remainder so the sum is always exactly
// purchaseAmount. Pure function, no side effects.
func ComputeSchedule(purchaseAmount int64, count int, frequency Frequency, startDate time.Time) ([]ScheduleEntry, error) {
	if purchaseAmount <= 0 {
		return nil, appErrors.NewValidationError("purchase_amount", "deve ser maior que zero")
	}
	if count < MinInstallments || count > MaxInstallments {
		return nil, appErrors.NewValidationError("number_of_installments", "deve estar entre 2 e 36")
	}
	if !frequency.IsValid() {
		return nil, appErrors.NewValidationError("frequency", "frequencia invalida")
	}
	if startDate.IsZero() {
		return nil, appErrors.NewValidationError("start_date", "e obrigatoria")
	}

	base := InstallmentBase(purchaseAmount, count)
	last := purchaseAmount - base*int64(count-1)
	if last <= 0 {
		return nil, appErrors.NewValidationError("number_of_installments", "valor da compra e baixo demais para o numero de parcelas")
	}

	start := DateOnly(startDate)
	entries := make([]ScheduleEntry, 0, count)
	for i := 0; i < count; i++ {
		amount := base
		if i == count-1 {
			amount = last
		}
		entries = append(entries, ScheduleEntry{
			Number:  i + 1,
			DueDate: dueDateAt(start, frequency, i),
			Amount:  amount,
		})
	}

	return entries, nil
}

// InstallmentBase is purchaseAmount/count rounded half-up to the nearest
// minor unit.
func InstallmentBase(purchaseAmount int64, count int) int64 {
	return decimal.NewFromInt(purchaseAmount).
		DivRound(decimal.NewFromInt(int64(count)), 0).
		IntPart()
}

func dueDateAt(start time.Time, frequency Frequency, index int) time.Time {
	switch frequency {
	case FrequencyWeekly:
		return start.AddDate(0, 0, 7*index)
	case FrequencyBiweekly:
		return start.AddDate(0, 0, 14*index)
	default:
		return addMonthsClamped(start, index)
	}
}

// addMonthsClamped advances by whole calendar months keeping the start
// date's day-of-month as the anchor: a day that does not exist in the target
// month is clamped to that month's last day, and later months go back to the
// anchor (Jan 31 -> Feb 28 -> Mar 31).
func addMonthsClamped(start time.Time, months int) time.Time {
	year, month, day := start.Date()
	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	lastDay := first.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

func DateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
