package picking

import (
	"testing"

	"github.com/muhammadheryan/picking-engine/model"
)

func TestOptimizeRoute(t *testing.T) {
	item := func(sku, zone, aisle, rack string) model.PickingListItem {
		return model.PickingListItem{SKU: sku, Zone: zone, Aisle: aisle, Rack: rack, Quantity: 1}
	}

	tests := []struct {
		name     string
		items    []model.PickingListItem
		wantSKUs []string
	}{
		{
			name: "serpentine: even aisle ascends, odd aisle descends",
			items: []model.PickingListItem{
				item("A1-R1", "A", "A-01", "R1"),
				item("A2-R3", "A", "A-02", "R3"),
				item("A1-R3", "A", "A-01", "R3"),
				item("A2-R1", "A", "A-02", "R1"),
			},
			wantSKUs: []string{"A1-R3", "A1-R1", "A2-R1", "A2-R3"},
		},
		{
			name: "zones walked in order before aisles",
			items: []model.PickingListItem{
				item("B-ITEM", "B", "B-02", "R1"),
				item("A-ITEM", "A", "A-04", "R2"),
			},
			wantSKUs: []string{"A-ITEM", "B-ITEM"},
		},
		{
			name: "items without a location go last",
			items: []model.PickingListItem{
				{SKU: "NOWHERE", Quantity: 1},
				item("LOCATED", "A", "A-02", "R1"),
			},
			wantSKUs: []string{"LOCATED", "NOWHERE"},
		},
		{
			name: "equal locations keep insertion order",
			items: []model.PickingListItem{
				item("FIRST", "A", "A-02", "R1"),
				item("SECOND", "A", "A-02", "R1"),
			},
			wantSKUs: []string{"FIRST", "SECOND"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := optimizeRoute(tt.items)
			if len(got) != len(tt.wantSKUs) {
				t.Fatalf("optimizeRoute() len = %d, want %d", len(got), len(tt.wantSKUs))
			}
			for i, sku := range tt.wantSKUs {
				if got[i].SKU != sku {
					t.Errorf("position %d = %s, want %s", i, got[i].SKU, sku)
				}
				if got[i].Sequence != i+1 {
					t.Errorf("position %d sequence = %d, want %d", i, got[i].Sequence, i+1)
				}
			}
		})
	}
}

func TestOptimizeRoute_Deterministic(t *testing.T) {
	build := func() []model.PickingListItem {
		return []model.PickingListItem{
			{SKU: "C", Zone: "B", Aisle: "B-01", Rack: "R2", Quantity: 1},
			{SKU: "A", Zone: "A", Aisle: "A-03", Rack: "R1", Quantity: 1},
			{SKU: "D", Quantity: 1},
			{SKU: "B", Zone: "A", Aisle: "A-03", Rack: "R4", Quantity: 1},
		}
	}

	first := optimizeRoute(build())
	second := optimizeRoute(build())
	for i := range first {
		if first[i].SKU != second[i].SKU {
			t.Fatalf("run differs at %d: %s vs %s", i, first[i].SKU, second[i].SKU)
		}
	}
}

func TestAisleNumber(t *testing.T) {
	tests := []struct {
		aisle string
		want  int
	}{
		{"A-03", 3},
		{"A-10", 10},
		{"12", 12},
		{"B", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := aisleNumber(tt.aisle); got != tt.want {
			t.Errorf("aisleNumber(%q) = %d, want %d", tt.aisle, got, tt.want)
		}
	}
}

func TestEstimateMinutes(t *testing.T) {
	items := []model.PickingListItem{
		{SKU: "A", Quantity: 3, Zone: "A", Aisle: "A-01", Rack: "R1"},
		{SKU: "B", Quantity: 2, Zone: "A", Aisle: "A-02", Rack: "R1"},
	}

	tests := []struct {
		name     string
		items    []model.PickingListItem
		modifier float64
		want     int
	}{
		// 5 units * 15s + 2 locations * 20s = 115s
		{name: "batch modifier", items: items, modifier: 1.0, want: 2},
		{name: "zone modifier rounds up", items: items, modifier: 0.8, want: 2},
		{name: "single order", items: items[:1], modifier: 1.5, want: 2},
		{name: "empty list", items: nil, modifier: 1.0, want: 0},
		{
			name: "unlocated items share one walk stop",
			items: []model.PickingListItem{
				{SKU: "X", Quantity: 1},
				{SKU: "Y", Quantity: 1},
			},
			modifier: 1.0,
			want:     1,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := estimateMinutes(tt.items, tt.modifier); got != tt.want {
				t.Errorf("estimateMinutes() = %d, want %d", got, tt.want)
			}
		})
	}
}
