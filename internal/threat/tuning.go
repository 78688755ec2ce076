package threat

// Easing specifies how the slide-step penalty ramps with the time shaved.
type Easing string

const (
	EaseLinear     Easing = "linear"
	EaseOutQuad    Easing = "easeOutQuad"
	EaseInOutCubic Easing = "easeInOutCubic"
)

// FatigueReset names the boundary at which the caller is expected to reset
// the slide-step fatigue surcharge it accumulates on the pitcher.
type FatigueReset string

const (
	ResetPerHalfInning      FatigueReset = "half_inning"
	ResetPerPlateAppearance FatigueReset = "plate_appearance"
)

// Tuning carries every balance constant of the engine. All of it is supplied
// at engine construction (normally from the yaml tuning files); resolver
// logic never hardcodes a knob.
type Tuning struct {
	// lead advantage: lead*K1 + jump*K2 - pressure*K3 (seconds)
	K1 float64
	K2 float64
	K3 float64

	// runner speed curve
	BaseDistance    float64 // feet between bases the curve is calibrated for
	RunnerTimeBase  float64 // seconds at speed 50 over BaseDistance
	RunnerTimeSlope float64 // seconds shaved per speed point above 50
	RunnerTimeFloor float64 // fastest possible time over BaseDistance

	// catcher pop time
	PopTimeBase      float64
	PopArmSlope      float64 // seconds per arm-strength point above 50
	PopAccuracySlope float64 // seconds per accuracy point above 50
	PopTimeFloor     float64
	PopFatigueRate   float64 // seconds added per fatigue unit

	// pitcher delivery
	DeliveryBase         float64
	DeliveryControlSlope float64
	DeliveryFloor        float64

	// slide step
	SlideStepShave      float64 // seconds removed from the baseline delivery
	SlideStepFloor      float64 // hard minimum delivery under slide step
	VelocityPenaltyMax  float64 // velocity penalty at a full shave
	ControlPenaltyMax   float64 // control penalty at a full shave
	VelocityFatigueRate float64 // surcharge per fatigue unit
	ControlFatigueRate  float64
	SlideStepEasing     Easing
	SlideStepReset      FatigueReset

	// steal resolution
	FuzzHalfWidth float64 // execution variance applied to the margin
	OffenseFloor  float64 // a runner never has less than this many seconds
	ErrorSafeProb float64 // optional safe-on-throwing-error branch; 0 = off

	// pickoff curve
	PickoffBaseChance    float64
	PickoffSkillSlope    float64 // chance per pickoff-rating point above 50
	PickoffLeadSlope     float64 // chance per foot of lead
	PickoffMinChance     float64
	PickoffMaxChance     float64
	PickoffStaminaBase   float64 // stamina burned even on a pickout
	PickoffStaminaSkill  float64
	PickoffMissSurcharge float64 // extra stamina wasted on a miss
	HoldLeadTrim         float64 // lead lost diving back on a failed pickoff
	MissJumpGain         float64 // jump learned from seeing the pickoff move

	// threat state evolution
	DefaultJump     float64
	JumpMax         float64
	JumpGainBall    float64 // jump improvement on a pitch out of the zone
	LeadCreepBall   float64 // lead gained when the pitcher misses
	LeadDecayStrike float64 // lead lost on a called strike under pressure
}

// DefaultTuning is the shipped balance profile; configs/default.yaml mirrors
// these values.
func DefaultTuning() Tuning {
	return Tuning{
		K1: 0.02,
		K2: 0.03,
		K3: 0.02,

		BaseDistance:    90,
		RunnerTimeBase:  3.75,
		RunnerTimeSlope: 0.01,
		RunnerTimeFloor: 2.8,

		PopTimeBase:      2.0,
		PopArmSlope:      0.003,
		PopAccuracySlope: 0.002,
		PopTimeFloor:     1.75,
		PopFatigueRate:   0.02,

		DeliveryBase:         1.45,
		DeliveryControlSlope: 0.002,
		DeliveryFloor:        1.2,

		SlideStepShave:      0.18,
		SlideStepFloor:      1.0,
		VelocityPenaltyMax:  1.5,
		ControlPenaltyMax:   4.0,
		VelocityFatigueRate: 0.5,
		ControlFatigueRate:  1.5,
		SlideStepEasing:     EaseLinear,
		SlideStepReset:      ResetPerHalfInning,

		FuzzHalfWidth: 0.05,
		OffenseFloor:  0.5,
		ErrorSafeProb: 0,

		PickoffBaseChance:    0.05,
		PickoffSkillSlope:    0.004,
		PickoffLeadSlope:     0.02,
		PickoffMinChance:     0.02,
		PickoffMaxChance:     0.35,
		PickoffStaminaBase:   0.75,
		PickoffStaminaSkill:  0.01,
		PickoffMissSurcharge: 0.35,
		HoldLeadTrim:         0.5,
		MissJumpGain:         0.05,

		DefaultJump:     0.5,
		JumpMax:         1.0,
		JumpGainBall:    0.05,
		LeadCreepBall:   0.25,
		LeadDecayStrike: 0.3,
	}
}
