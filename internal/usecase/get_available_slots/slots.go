package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
)

// ComputeAvailableSlots строит слоты длительностью durationMinutes внутри рабочих
// часов даты с шагом domain.SlotStepMinutes и исключает слоты, пересекающие
// занятые окна. Функция чистая: одинаковые входные данные дают одинаковый результат.
func ComputeAvailableSlots(
	date time.Time,
	durationMinutes int,
	hours *domain.WorkingHours,
	live []domain.TimeWindow,
) []domain.Slot {
	slots := make([]domain.Slot, 0)

	if durationMinutes <= 0 {
		return slots
	}

	window, ok := hours.Window(date)
	if !ok {
		return slots
	}

	duration := time.Duration(durationMinutes) * time.Minute
	if duration > window.End.Sub(window.Start) {
		return slots
	}

	nextDay := startOfDay(date).AddDate(0, 0, 1)
	step := time.Duration(domain.SlotStepMinutes) * time.Minute

	for start := window.Start; !start.Add(duration).After(window.End); start = start.Add(step) {
		end := start.Add(duration)
		// Слот не может заканчиваться на следующий день
		if end.After(nextDay) {
			break
		}

		candidate := domain.TimeWindow{Start: start, End: end}
		if overlapsAny(candidate, live) {
			continue
		}

		slots = append(slots, domain.Slot{Start: start, End: end})
	}

	return slots
}

func overlapsAny(candidate domain.TimeWindow, live []domain.TimeWindow) bool {
	for _, w := range live {
		if candidate.Overlaps(w) {
			return true
		}
	}
	return false
}

// dropStarted убирает слоты, начало которых уже прошло
func dropStarted(slots []domain.Slot, now time.Time) []domain.Slot {
	result := make([]domain.Slot, 0, len(slots))
	for _, s := range slots {
		if !s.Start.Before(now) {
			result = append(result, s)
		}
	}
	return result
}
