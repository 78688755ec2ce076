package tuning

import (
	"fmt"
	"math"
	"strings"

	"github.com/sandlot-sim/baserun/internal/threat"
)

func bad(v *float64) bool {
	return v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0))
}

// ValidateRaw checks semantic constraints of a merged RawConfig before it is
// normalized. All violations are reported at once.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	nonNeg := func(name string, v *float64) {
		if bad(v) {
			errs = append(errs, name+" must be finite")
			return
		}
		if v != nil && *v < 0 {
			errs = append(errs, name+" must be >= 0")
		}
	}
	positive := func(name string, v *float64) {
		if bad(v) {
			errs = append(errs, name+" must be finite")
			return
		}
		if v != nil && *v <= 0 {
			errs = append(errs, name+" must be > 0")
		}
	}
	prob := func(name string, v *float64) {
		if bad(v) {
			errs = append(errs, name+" must be finite")
			return
		}
		if v != nil && (*v < 0 || *v > 1) {
			errs = append(errs, name+" must be in [0,1]")
		}
	}

	if t := cfg.Timing; t != nil {
		nonNeg("timing.k1", t.K1)
		nonNeg("timing.k2", t.K2)
		nonNeg("timing.k3", t.K3)
		positive("timing.base_distance", t.BaseDistance)
		positive("timing.runner_time_base", t.RunnerTimeBase)
		nonNeg("timing.runner_time_slope", t.RunnerTimeSlope)
		positive("timing.runner_time_floor", t.RunnerTimeFloor)
		positive("timing.pop_time_base", t.PopTimeBase)
		nonNeg("timing.pop_arm_slope", t.PopArmSlope)
		nonNeg("timing.pop_accuracy_slope", t.PopAccuracySlope)
		positive("timing.pop_time_floor", t.PopTimeFloor)
		nonNeg("timing.pop_fatigue_rate", t.PopFatigueRate)
		positive("timing.delivery_base", t.DeliveryBase)
		nonNeg("timing.delivery_control_slope", t.DeliveryControlSlope)
		positive("timing.delivery_floor", t.DeliveryFloor)
	}

	if s := cfg.Steal; s != nil {
		nonNeg("steal.fuzz_half_width", s.FuzzHalfWidth)
		positive("steal.offense_floor", s.OffenseFloor)
		prob("steal.error_safe_prob", s.ErrorSafeProb)
	}

	if ss := cfg.SlideStep; ss != nil {
		positive("slide_step.shave", ss.Shave)
		positive("slide_step.min_delivery", ss.MinDelivery)
		nonNeg("slide_step.velocity_penalty_max", ss.VelocityPenaltyMax)
		nonNeg("slide_step.control_penalty_max", ss.ControlPenaltyMax)
		nonNeg("slide_step.velocity_fatigue_rate", ss.VelocityFatigueRate)
		nonNeg("slide_step.control_fatigue_rate", ss.ControlFatigueRate)
		if ss.VelocityPenaltyMax != nil && ss.ControlPenaltyMax != nil &&
			*ss.VelocityPenaltyMax == 0 && *ss.ControlPenaltyMax == 0 {
			errs = append(errs, "slide_step: at least one of velocity_penalty_max/control_penalty_max must be > 0 (no free speedup)")
		}
		switch threat.Easing(ss.Easing) {
		case "", threat.EaseLinear, threat.EaseOutQuad, threat.EaseInOutCubic:
		default:
			errs = append(errs, "slide_step.easing must be one of: linear, easeOutQuad, easeInOutCubic")
		}
		switch threat.FatigueReset(ss.FatigueReset) {
		case "", threat.ResetPerHalfInning, threat.ResetPerPlateAppearance:
		default:
			errs = append(errs, "slide_step.fatigue_reset must be one of: half_inning, plate_appearance")
		}
	}

	if p := cfg.Pickoff; p != nil {
		prob("pickoff.base_chance", p.BaseChance)
		nonNeg("pickoff.skill_slope", p.SkillSlope)
		nonNeg("pickoff.lead_slope", p.LeadSlope)
		prob("pickoff.min_chance", p.MinChance)
		prob("pickoff.max_chance", p.MaxChance)
		if p.MinChance != nil && p.MaxChance != nil && *p.MinChance > *p.MaxChance {
			errs = append(errs, "pickoff.min_chance must be <= pickoff.max_chance")
		}
		positive("pickoff.stamina_base", p.StaminaBase)
		nonNeg("pickoff.stamina_skill_rate", p.StaminaSkillRate)
		nonNeg("pickoff.miss_surcharge", p.MissSurcharge)
		nonNeg("pickoff.hold_lead_trim", p.HoldLeadTrim)
		nonNeg("pickoff.miss_jump_gain", p.MissJumpGain)
	}

	if s := cfg.State; s != nil {
		nonNeg("state.default_jump", s.DefaultJump)
		positive("state.jump_max", s.JumpMax)
		nonNeg("state.jump_gain_ball", s.JumpGainBall)
		nonNeg("state.lead_creep_ball", s.LeadCreepBall)
		nonNeg("state.lead_decay_strike", s.LeadDecayStrike)
		if s.DefaultJump != nil && s.JumpMax != nil && *s.DefaultJump > *s.JumpMax {
			errs = append(errs, "state.default_jump must be <= state.jump_max")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("tuning validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
