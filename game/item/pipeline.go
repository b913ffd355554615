package item

import (
	"github.com/kasuganosora/smitebuilder/server/resource"
)

// Observer receives per-stage statistics from a pipeline run.
type Observer interface {
	StageDropped(stage string, dropped int)
	PipelineDone(pipeline string, kept int)
}

// Pipeline applies its stages in order, each to the survivors of the one
// before. It never adds, reorders or modifies items.
type Pipeline struct {
	name   string
	stages []Stage
}

// NewPipeline creates a pipeline with a fixed stage order.
func NewPipeline(name string, stages ...Stage) *Pipeline {
	return &Pipeline{name: name, stages: append([]Stage(nil), stages...)}
}

// Name returns the pipeline name used in metrics and logs.
func (p *Pipeline) Name() string { return p.name }

// Stages returns the stage names in execution order.
func (p *Pipeline) Stages() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name()
	}
	return names
}

// Filter runs the pipeline. The input slice is not modified; the result is a
// new slice holding the surviving items in input order.
func (p *Pipeline) Filter(items []resource.Item, q Query) []resource.Item {
	return p.FilterObserved(items, q, nil)
}

// FilterObserved is Filter with an optional observer.
func (p *Pipeline) FilterObserved(items []resource.Item, q Query, obs Observer) []resource.Item {
	out := make([]resource.Item, 0, len(items))
	out = append(out, items...)
	for _, s := range p.stages {
		kept := out[:0]
		for i := range out {
			if s.Keep(&out[i], q) {
				kept = append(kept, out[i])
			}
		}
		if obs != nil {
			obs.StageDropped(s.Name(), len(out)-len(kept))
		}
		out = kept
	}
	if obs != nil {
		obs.PipelineDone(p.name, len(out))
	}
	return out
}

var (
	// DefaultPipeline is the eligibility chain. Stage order is significant:
	// the starting-item exemption applies to DamageAffinityStage only, so
	// starting items still face the override and exception stages.
	DefaultPipeline = NewPipeline("eligible",
		ActiveFlagStage{},
		CategoryStage{},
		RoleRestrictionStage{},
		DamageAffinityStage{},
		OverrideListStage{},
		EquippedExclusionStage{},
		CharacterExceptionStage{},
	)

	ActivePipeline      = NewPipeline("active", ActiveFlagStage{})
	ConsumablesPipeline = NewPipeline("consumables", ActiveFlagStage{}, TypeStage{Type: resource.TypeConsumable})
	RelicsPipeline      = NewPipeline("relics", ActiveFlagStage{}, TypeStage{Type: resource.TypeActive})
)

// FilterEligibleItems returns the items a character described by q may equip.
func FilterEligibleItems(items []resource.Item, q Query) []resource.Item {
	return DefaultPipeline.Filter(items, q)
}
