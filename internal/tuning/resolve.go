package tuning

import "github.com/sandlot-sim/baserun/internal/threat"

// Normalize folds a validated RawConfig over the engine defaults and returns
// the immutable knob set resolvers consume. Unset leaves keep the default.
func Normalize(cfg RawConfig) threat.Tuning {
	out := threat.DefaultTuning()

	setF := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}

	if t := cfg.Timing; t != nil {
		setF(&out.K1, t.K1)
		setF(&out.K2, t.K2)
		setF(&out.K3, t.K3)
		setF(&out.BaseDistance, t.BaseDistance)
		setF(&out.RunnerTimeBase, t.RunnerTimeBase)
		setF(&out.RunnerTimeSlope, t.RunnerTimeSlope)
		setF(&out.RunnerTimeFloor, t.RunnerTimeFloor)
		setF(&out.PopTimeBase, t.PopTimeBase)
		setF(&out.PopArmSlope, t.PopArmSlope)
		setF(&out.PopAccuracySlope, t.PopAccuracySlope)
		setF(&out.PopTimeFloor, t.PopTimeFloor)
		setF(&out.PopFatigueRate, t.PopFatigueRate)
		setF(&out.DeliveryBase, t.DeliveryBase)
		setF(&out.DeliveryControlSlope, t.DeliveryControlSlope)
		setF(&out.DeliveryFloor, t.DeliveryFloor)
	}
	if s := cfg.Steal; s != nil {
		setF(&out.FuzzHalfWidth, s.FuzzHalfWidth)
		setF(&out.OffenseFloor, s.OffenseFloor)
		setF(&out.ErrorSafeProb, s.ErrorSafeProb)
	}
	if ss := cfg.SlideStep; ss != nil {
		setF(&out.SlideStepShave, ss.Shave)
		setF(&out.SlideStepFloor, ss.MinDelivery)
		setF(&out.VelocityPenaltyMax, ss.VelocityPenaltyMax)
		setF(&out.ControlPenaltyMax, ss.ControlPenaltyMax)
		setF(&out.VelocityFatigueRate, ss.VelocityFatigueRate)
		setF(&out.ControlFatigueRate, ss.ControlFatigueRate)
		if ss.Easing != "" {
			out.SlideStepEasing = threat.Easing(ss.Easing)
		}
		if ss.FatigueReset != "" {
			out.SlideStepReset = threat.FatigueReset(ss.FatigueReset)
		}
	}
	if p := cfg.Pickoff; p != nil {
		setF(&out.PickoffBaseChance, p.BaseChance)
		setF(&out.PickoffSkillSlope, p.SkillSlope)
		setF(&out.PickoffLeadSlope, p.LeadSlope)
		setF(&out.PickoffMinChance, p.MinChance)
		setF(&out.PickoffMaxChance, p.MaxChance)
		setF(&out.PickoffStaminaBase, p.StaminaBase)
		setF(&out.PickoffStaminaSkill, p.StaminaSkillRate)
		setF(&out.PickoffMissSurcharge, p.MissSurcharge)
		setF(&out.HoldLeadTrim, p.HoldLeadTrim)
		setF(&out.MissJumpGain, p.MissJumpGain)
	}
	if s := cfg.State; s != nil {
		setF(&out.DefaultJump, s.DefaultJump)
		setF(&out.JumpMax, s.JumpMax)
		setF(&out.JumpGainBall, s.JumpGainBall)
		setF(&out.LeadCreepBall, s.LeadCreepBall)
		setF(&out.LeadDecayStrike, s.LeadDecayStrike)
	}
	return out
}

// Resolve is the one-call path the server uses: load, merge, validate,
// normalize.
func (l *Loader) Resolve(profile string) (threat.Tuning, error) {
	raw, err := l.LoadMerged(profile)
	if err != nil {
		return threat.Tuning{}, err
	}
	if err := ValidateRaw(raw); err != nil {
		return threat.Tuning{}, err
	}
	return Normalize(raw), nil
}
