/*
occupancy.go - Occupancy estimation and room availability

PURPOSE:
  Two closely related sweeps over the active reservation set:

  - OccupancyRatio: the average fractional occupancy across a span. This is
    a business-rule measure feeding incentive eligibility, NOT a physical
    snapshot: each night counts every overlapping active stay, whether or
    not a guest has checked in yet.

  - Availability: the minimum number of free rooms across a span. A span is
    available iff every night has at least one free room. The optional
    exclusion lets a date change ignore the reservation's own occupancy.
*/
package hotel

// occupiedOn counts active reservations whose stay contains night d,
// optionally excluding one locator.
func occupiedOn(active []*Reservation, d Date, excludeLocator string) int {
	count := 0
	for _, r := range active {
		if excludeLocator != "" && r.Locator == excludeLocator {
			continue
		}
		if r.Span().Contains(d) {
			count++
		}
	}
	return count
}

// OccupancyRatio computes the average per-night occupancy of the span as a
// fraction of capacity, in [0, 1]. An empty reservation set or zero-length
// span yields 0.
func OccupancyRatio(active []*Reservation, span StaySpan, capacity int, excludeLocator string) float64 {
	nights := span.Dates()
	if len(nights) == 0 || len(active) == 0 || capacity <= 0 {
		return 0
	}

	total := 0
	for _, d := range nights {
		total += occupiedOn(active, d, excludeLocator)
	}
	return (float64(total) / float64(len(nights))) / float64(capacity)
}

// AvailabilityResult is the outcome of an availability sweep.
type AvailabilityResult struct {
	Available    bool
	MinRoomsFree int

	// Nightly is rooms free per night, in calendar order.
	Nightly []NightCount
}

// NightCount is the per-night free-room count.
type NightCount struct {
	Date      Date `json:"date"`
	RoomsFree int  `json:"rooms_free"`
}

// Availability computes rooms free for every night of the span. The span is
// available iff the minimum across nights is positive. An empty span is
// vacuously available at full capacity.
func Availability(active []*Reservation, span StaySpan, capacity int, excludeLocator string) AvailabilityResult {
	nights := span.Dates()
	if len(nights) == 0 {
		return AvailabilityResult{Available: true, MinRoomsFree: capacity}
	}

	result := AvailabilityResult{MinRoomsFree: capacity}
	for _, d := range nights {
		free := capacity - occupiedOn(active, d, excludeLocator)
		if free < result.MinRoomsFree {
			result.MinRoomsFree = free
		}
		result.Nightly = append(result.Nightly, NightCount{Date: d, RoomsFree: free})
	}
	result.Available = result.MinRoomsFree > 0
	return result
}
