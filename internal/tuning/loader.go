package tuning

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Paths resolves tuning files under a base directory: a default file plus
// named balance profiles that override it.
type Paths struct {
	BaseDir string
}

func (p Paths) DefaultPath() string {
	return filepath.Join(p.BaseDir, "default.yaml")
}

func (p Paths) ProfilePath(profile string) string {
	return filepath.Join(p.BaseDir, "profiles", profile+".yaml")
}

// Loader reads yaml tuning files and merges default → profile.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]RawConfig // key: profile name or "$default"
}

func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]RawConfig),
	}
}

// LoadMerged loads the default config with the named profile layered on top.
// An empty profile returns the default alone. Missing profile files merge as
// empty; a missing default is an error.
func (l *Loader) LoadMerged(profile string) (RawConfig, error) {
	key := profile
	if key == "" {
		key = "$default"
	}
	l.mu.RLock()
	if cfg, ok := l.cache[key]; ok {
		l.mu.RUnlock()
		return cfg, nil
	}
	l.mu.RUnlock()

	defCfg, err := readYAML(l.paths.DefaultPath())
	if err != nil {
		return RawConfig{}, fmt.Errorf("read default tuning: %w", err)
	}
	merged := defCfg
	if profile != "" {
		profCfg, err := readYAML(l.paths.ProfilePath(profile))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, fmt.Errorf("read profile %q: %w", profile, err)
		}
		merged = mergeRaw(defCfg, profCfg)
	}

	l.mu.Lock()
	l.cache[key] = merged
	l.cache["$default"] = defCfg
	l.mu.Unlock()

	return merged, nil
}

// Invalidate clears the cache. Called by the hot-reload watcher.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawConfig)
}

func readYAML(path string) (RawConfig, error) {
	var cfg RawConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return RawConfig{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// mergeRaw layers b over a, field by field. Pointers from b win when set.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a
	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}
	out.Timing = mergeTiming(a.Timing, b.Timing)
	out.Steal = mergeSteal(a.Steal, b.Steal)
	out.SlideStep = mergeSlideStep(a.SlideStep, b.SlideStep)
	out.Pickoff = mergePickoff(a.Pickoff, b.Pickoff)
	out.State = mergeState(a.State, b.State)
	return out
}

func pickF(a, b *float64) *float64 {
	if b != nil {
		return b
	}
	return a
}

func mergeTiming(a, b *TimingCfg) *TimingCfg {
	if a == nil && b == nil {
		return nil
	}
	if a == nil {
		c := *b
		return &c
	}
	out := *a
	if b == nil {
		return &out
	}
	out.K1 = pickF(a.K1, b.K1)
	out.K2 = pickF(a.K2, b.K2)
	out.K3 = pickF(a.K3, b.K3)
	out.BaseDistance = pickF(a.BaseDistance, b.BaseDistance)
	out.RunnerTimeBase = pickF(a.RunnerTimeBase, b.RunnerTimeBase)
	out.RunnerTimeSlope = pickF(a.RunnerTimeSlope, b.RunnerTimeSlope)
	out.RunnerTimeFloor = pickF(a.RunnerTimeFloor, b.RunnerTimeFloor)
	out.PopTimeBase = pickF(a.PopTimeBase, b.PopTimeBase)
	out.PopArmSlope = pickF(a.PopArmSlope, b.PopArmSlope)
	out.PopAccuracySlope = pickF(a.PopAccuracySlope, b.PopAccuracySlope)
	out.PopTimeFloor = pickF(a.PopTimeFloor, b.PopTimeFloor)
	out.PopFatigueRate = pickF(a.PopFatigueRate, b.PopFatigueRate)
	out.DeliveryBase = pickF(a.DeliveryBase, b.DeliveryBase)
	out.DeliveryControlSlope = pickF(a.DeliveryControlSlope, b.DeliveryControlSlope)
	out.DeliveryFloor = pickF(a.DeliveryFloor, b.DeliveryFloor)
	return &out
}

func mergeSteal(a, b *StealCfg) *StealCfg {
	if a == nil && b == nil {
		return nil
	}
	if a == nil {
		c := *b
		return &c
	}
	out := *a
	if b == nil {
		return &out
	}
	out.FuzzHalfWidth = pickF(a.FuzzHalfWidth, b.FuzzHalfWidth)
	out.OffenseFloor = pickF(a.OffenseFloor, b.OffenseFloor)
	out.ErrorSafeProb = pickF(a.ErrorSafeProb, b.ErrorSafeProb)
	return &out
}

func mergeSlideStep(a, b *SlideStepCfg) *SlideStepCfg {
	if a == nil && b == nil {
		return nil
	}
	if a == nil {
		c := *b
		return &c
	}
	out := *a
	if b == nil {
		return &out
	}
	out.Shave = pickF(a.Shave, b.Shave)
	out.MinDelivery = pickF(a.MinDelivery, b.MinDelivery)
	out.VelocityPenaltyMax = pickF(a.VelocityPenaltyMax, b.VelocityPenaltyMax)
	out.ControlPenaltyMax = pickF(a.ControlPenaltyMax, b.ControlPenaltyMax)
	out.VelocityFatigueRate = pickF(a.VelocityFatigueRate, b.VelocityFatigueRate)
	out.ControlFatigueRate = pickF(a.ControlFatigueRate, b.ControlFatigueRate)
	if b.Easing != "" {
		out.Easing = b.Easing
	}
	if b.FatigueReset != "" {
		out.FatigueReset = b.FatigueReset
	}
	return &out
}

func mergePickoff(a, b *PickoffCfg) *PickoffCfg {
	if a == nil && b == nil {
		return nil
	}
	if a == nil {
		c := *b
		return &c
	}
	out := *a
	if b == nil {
		return &out
	}
	out.BaseChance = pickF(a.BaseChance, b.BaseChance)
	out.SkillSlope = pickF(a.SkillSlope, b.SkillSlope)
	out.LeadSlope = pickF(a.LeadSlope, b.LeadSlope)
	out.MinChance = pickF(a.MinChance, b.MinChance)
	out.MaxChance = pickF(a.MaxChance, b.MaxChance)
	out.StaminaBase = pickF(a.StaminaBase, b.StaminaBase)
	out.StaminaSkillRate = pickF(a.StaminaSkillRate, b.StaminaSkillRate)
	out.MissSurcharge = pickF(a.MissSurcharge, b.MissSurcharge)
	out.HoldLeadTrim = pickF(a.HoldLeadTrim, b.HoldLeadTrim)
	out.MissJumpGain = pickF(a.MissJumpGain, b.MissJumpGain)
	return &out
}

func mergeState(a, b *StateCfg) *StateCfg {
	if a == nil && b == nil {
		return nil
	}
	if a == nil {
		c := *b
		return &c
	}
	out := *a
	if b == nil {
		return &out
	}
	out.DefaultJump = pickF(a.DefaultJump, b.DefaultJump)
	out.JumpMax = pickF(a.JumpMax, b.JumpMax)
	out.JumpGainBall = pickF(a.JumpGainBall, b.JumpGainBall)
	out.LeadCreepBall = pickF(a.LeadCreepBall, b.LeadCreepBall)
	out.LeadDecayStrike = pickF(a.LeadDecayStrike, b.LeadDecayStrike)
	return &out
}
