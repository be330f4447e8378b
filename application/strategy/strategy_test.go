package strategy_test

import (
	"testing"

	"github.com/muhammadheryan/picking-engine/application/strategy"
	"github.com/muhammadheryan/picking-engine/constant"
	cerr "github.com/muhammadheryan/picking-engine/utils/errors"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		id            string
		wantMaxOrders int
		wantErr       bool
	}{
		{id: "single", wantMaxOrders: 1},
		{id: "batch", wantMaxOrders: 10},
		{id: "wave", wantMaxOrders: 25},
		{id: "zone", wantMaxOrders: 20},
		{id: "cluster", wantMaxOrders: 12},
		{id: "teleport", wantErr: true},
		{id: "", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.id, func(t *testing.T) {
			got, err := strategy.Resolve(tt.id)
			if tt.wantErr {
				if !cerr.Is(err, constant.ErrInvalidStrategy) {
					t.Fatalf("Resolve(%q) error = %v, want invalid strategy", tt.id, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) error = %v", tt.id, err)
			}
			if got.MaxOrders != tt.wantMaxOrders {
				t.Errorf("MaxOrders = %d, want %d", got.MaxOrders, tt.wantMaxOrders)
			}
		})
	}
}

func TestResolve_ReturnsCopy(t *testing.T) {
	first, _ := strategy.Resolve("batch")
	first.MaxOrders = 999

	second, _ := strategy.Resolve("batch")
	if second.MaxOrders != 10 {
		t.Fatalf("catalog mutated through Resolve result: MaxOrders = %d", second.MaxOrders)
	}
}

func TestList(t *testing.T) {
	got := strategy.List()
	if len(got) != 5 {
		t.Fatalf("List() len = %d, want 5", len(got))
	}
	if got[0].ID != "single" || got[len(got)-1].ID != "cluster" {
		t.Error("List() should keep the canonical catalog order")
	}

	got[0].ID = "mutated"
	again := strategy.List()
	if again[0].ID != "single" {
		t.Error("List() must return a copy of the catalog")
	}
}
