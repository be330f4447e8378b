package picking

import (
	"math"
	"sort"
	"strconv"

	"github.com/muhammadheryan/picking-engine/constant"
	"github.com/muhammadheryan/picking-engine/model"
)

// optimizeRoute orders items for a single forward walk: zone, then aisle,
// then rack in serpentine direction (ascending on even aisles, descending on
// odd) so the picker exits each aisle at the end the next one starts from.
// Items without a resolved location go last. This is a heuristic ordering,
// not a shortest-path solve.
func optimizeRoute(items []model.PickingListItem) []model.PickingListItem {
	sort.SliceStable(items, func(i, j int) bool {
		return routeLess(&items[i], &items[j])
	})
	for i := range items {
		items[i].Sequence = i + 1
	}
	return items
}

func routeLess(a, b *model.PickingListItem) bool {
	if a.HasLocation() != b.HasLocation() {
		return a.HasLocation()
	}
	if a.Zone != b.Zone {
		return a.Zone < b.Zone
	}
	if a.Aisle != b.Aisle {
		return a.Aisle < b.Aisle
	}
	if a.Rack != b.Rack {
		if aisleNumber(a.Aisle)%2 == 0 {
			return a.Rack < b.Rack
		}
		return a.Rack > b.Rack
	}
	return false
}

// aisleNumber extracts the trailing integer of an aisle label ("A-03" -> 3).
// Labels without digits count as even.
func aisleNumber(aisle string) int {
	end := len(aisle)
	start := end
	for start > 0 && aisle[start-1] >= '0' && aisle[start-1] <= '9' {
		start--
	}
	if start == end {
		return 0
	}
	n, err := strconv.Atoi(aisle[start:end])
	if err != nil {
		return 0
	}
	return n
}

// estimateMinutes is the advisory session duration: a fixed pick time per
// unit plus a walk time per distinct location, scaled by the strategy's
// efficiency modifier.
func estimateMinutes(items []model.PickingListItem, modifier float64) int {
	totalUnits := 0
	locations := make(map[string]struct{})
	for i := range items {
		totalUnits += items[i].Quantity
		locations[items[i].LocationCode()] = struct{}{}
	}
	seconds := float64(totalUnits*constant.PickSecondsPerUnit+len(locations)*constant.WalkSecondsPerLocation) * modifier
	return int(math.Ceil(seconds / 60))
}
