// Package entitlement decides which vocabulary levels a learner may study.
package entitlement

import (
	"context"
	"fmt"

	"github.com/at-ishikawa/wordcycle/internal/config"
	"github.com/at-ishikawa/wordcycle/internal/vocabulary"
)

type Tier string

const (
	TierFree    Tier = "free"
	TierPremium Tier = "premium"
)

var tierLevels = map[Tier][]vocabulary.Level{
	TierFree:    {vocabulary.LevelA1, vocabulary.LevelA2},
	TierPremium: vocabulary.AllLevels(),
}

// Gate grants the levels of a tier, or an explicit list when one is configured.
type Gate struct {
	levels []vocabulary.Level
}

func NewGate(tier Tier, overrides []vocabulary.Level) (*Gate, error) {
	if len(overrides) > 0 {
		return &Gate{levels: overrides}, nil
	}
	levels, ok := tierLevels[tier]
	if !ok {
		return nil, fmt.Errorf("unknown tier: %q", tier)
	}
	return &Gate{levels: levels}, nil
}

// NewGateFromConfig builds a Gate from the entitlement section of the config.
func NewGateFromConfig(cfg config.EntitlementConfig) (*Gate, error) {
	overrides := make([]vocabulary.Level, 0, len(cfg.UnlockedLevels))
	for _, name := range cfg.UnlockedLevels {
		level, err := vocabulary.ParseLevel(name)
		if err != nil {
			return nil, fmt.Errorf("vocabulary.ParseLevel() > %w", err)
		}
		overrides = append(overrides, level)
	}
	return NewGate(Tier(cfg.Tier), overrides)
}

func (g *Gate) UnlockedLevels(context.Context) ([]vocabulary.Level, error) {
	return append([]vocabulary.Level(nil), g.levels...), nil
}
