package planner

import "math"

// MinSessionHours is the smallest session the allocator will schedule.
const MinSessionHours = 0.5

// Quantize rounds an hour value to the nearest quarter hour. It is a pure
// rounding primitive; the minimum-session floor is the caller's job.
func Quantize(hours float64) float64 {
	return math.Round(hours*4) / 4
}
