package schedule

import "time"

// SlotStep is the grid on which bookable start times are generated.
const SlotStep = 15 * time.Minute

// Slots enumerates candidate start times on a 15-minute grid across the
// given ranges, preserving range order. Ranges are assumed disjoint and
// chronological (the Registry validates them), so no de-duplication happens.
//
// When today is true each range start is clipped upward to RoundUpNow(now)
// so that near-term slots which could not realistically be honoured are
// dropped. A range whose end has already passed contributes nothing.
func Slots(ranges []TimeRange, today bool, now time.Time) []TimeOfDay {
	var cutoff TimeOfDay
	if today {
		cutoff = RoundUpNow(now)
	}
	var out []TimeOfDay
	for _, r := range ranges {
		start := r.Start
		if today && start <= cutoff {
			start = cutoff
		}
		for t := start; t < r.End; t = t.Add(SlotStep) {
			out = append(out, t)
		}
	}
	return out
}

// RoundUpNow advances the clock by 30 - (minute mod 15) minutes, truncated
// to the minute. The result lands on or just past a 15-minute boundary and
// is always 16-30 minutes in the future, giving the venue a short buffer
// before the first offered slot.
func RoundUpNow(now time.Time) TimeOfDay {
	adv := time.Duration(30-now.Minute()%15) * time.Minute
	return TimeOfDayFromClock(now.Add(adv))
}
