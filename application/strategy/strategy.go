package strategy

import (
	"github.com/muhammadheryan/picking-engine/constant"
	"github.com/muhammadheryan/picking-engine/model"
	"github.com/muhammadheryan/picking-engine/utils/errors"
)

// Static catalog of picking strategies. Efficiency modifiers scale the route
// duration estimate: zone picking walks the least per unit, single-order
// picking the most.
var catalog = []model.PickingStrategy{
	{ID: "single", Name: "Single Order", MaxOrders: 1, RequiresCart: false, EfficiencyClass: "low", EfficiencyModifier: 1.5},
	{ID: "batch", Name: "Batch Picking", MaxOrders: 10, RequiresCart: true, EfficiencyClass: "medium", EfficiencyModifier: 1.0},
	{ID: "wave", Name: "Wave Picking", MaxOrders: 25, RequiresCart: true, EfficiencyClass: "high", EfficiencyModifier: 0.9},
	{ID: "zone", Name: "Zone Picking", MaxOrders: 20, RequiresCart: true, EfficiencyClass: "high", EfficiencyModifier: 0.8},
	{ID: "cluster", Name: "Cluster Picking", MaxOrders: 12, RequiresCart: true, EfficiencyClass: "medium", EfficiencyModifier: 0.85},
}

var byID = func() map[string]model.PickingStrategy {
	m := make(map[string]model.PickingStrategy, len(catalog))
	for _, s := range catalog {
		m[s.ID] = s
	}
	return m
}()

// Resolve looks up a strategy by id.
func Resolve(strategyID string) (*model.PickingStrategy, error) {
	s, ok := byID[strategyID]
	if !ok {
		return nil, errors.SetCustomError(constant.ErrInvalidStrategy)
	}
	return &s, nil
}

// List returns the catalog in its canonical order.
func List() []model.PickingStrategy {
	out := make([]model.PickingStrategy, len(catalog))
	copy(out, catalog)
	return out
}
