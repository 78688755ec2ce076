package tuning

// RawConfig mirrors the yaml tuning schema. Every leaf is a pointer so a
// profile file can override exactly the knobs it names and inherit the rest.
type RawConfig struct {
	Version   string        `yaml:"version"`
	Timing    *TimingCfg    `yaml:"timing,omitempty"`
	Steal     *StealCfg     `yaml:"steal,omitempty"`
	SlideStep *SlideStepCfg `yaml:"slide_step,omitempty"`
	Pickoff   *PickoffCfg   `yaml:"pickoff,omitempty"`
	State     *StateCfg     `yaml:"state,omitempty"`
	Notes     string        `yaml:"notes,omitempty"`
}

type TimingCfg struct {
	K1 *float64 `yaml:"k1,omitempty"`
	K2 *float64 `yaml:"k2,omitempty"`
	K3 *float64 `yaml:"k3,omitempty"`

	BaseDistance    *float64 `yaml:"base_distance,omitempty"`
	RunnerTimeBase  *float64 `yaml:"runner_time_base,omitempty"`
	RunnerTimeSlope *float64 `yaml:"runner_time_slope,omitempty"`
	RunnerTimeFloor *float64 `yaml:"runner_time_floor,omitempty"`

	PopTimeBase      *float64 `yaml:"pop_time_base,omitempty"`
	PopArmSlope      *float64 `yaml:"pop_arm_slope,omitempty"`
	PopAccuracySlope *float64 `yaml:"pop_accuracy_slope,omitempty"`
	PopTimeFloor     *float64 `yaml:"pop_time_floor,omitempty"`
	PopFatigueRate   *float64 `yaml:"pop_fatigue_rate,omitempty"`

	DeliveryBase         *float64 `yaml:"delivery_base,omitempty"`
	DeliveryControlSlope *float64 `yaml:"delivery_control_slope,omitempty"`
	DeliveryFloor        *float64 `yaml:"delivery_floor,omitempty"`
}

type StealCfg struct {
	FuzzHalfWidth *float64 `yaml:"fuzz_half_width,omitempty"`
	OffenseFloor  *float64 `yaml:"offense_floor,omitempty"`
	ErrorSafeProb *float64 `yaml:"error_safe_prob,omitempty"`
}

type SlideStepCfg struct {
	Shave               *float64 `yaml:"shave,omitempty"`
	MinDelivery         *float64 `yaml:"min_delivery,omitempty"`
	VelocityPenaltyMax  *float64 `yaml:"velocity_penalty_max,omitempty"`
	ControlPenaltyMax   *float64 `yaml:"control_penalty_max,omitempty"`
	VelocityFatigueRate *float64 `yaml:"velocity_fatigue_rate,omitempty"`
	ControlFatigueRate  *float64 `yaml:"control_fatigue_rate,omitempty"`
	Easing              string   `yaml:"easing,omitempty"`
	FatigueReset        string   `yaml:"fatigue_reset,omitempty"`
}

type PickoffCfg struct {
	BaseChance       *float64 `yaml:"base_chance,omitempty"`
	SkillSlope       *float64 `yaml:"skill_slope,omitempty"`
	LeadSlope        *float64 `yaml:"lead_slope,omitempty"`
	MinChance        *float64 `yaml:"min_chance,omitempty"`
	MaxChance        *float64 `yaml:"max_chance,omitempty"`
	StaminaBase      *float64 `yaml:"stamina_base,omitempty"`
	StaminaSkillRate *float64 `yaml:"stamina_skill_rate,omitempty"`
	MissSurcharge    *float64 `yaml:"miss_surcharge,omitempty"`
	HoldLeadTrim     *float64 `yaml:"hold_lead_trim,omitempty"`
	MissJumpGain     *float64 `yaml:"miss_jump_gain,omitempty"`
}

type StateCfg struct {
	DefaultJump     *float64 `yaml:"default_jump,omitempty"`
	JumpMax         *float64 `yaml:"jump_max,omitempty"`
	JumpGainBall    *float64 `yaml:"jump_gain_ball,omitempty"`
	LeadCreepBall   *float64 `yaml:"lead_creep_ball,omitempty"`
	LeadDecayStrike *float64 `yaml:"lead_decay_strike,omitempty"`
}
