package threat

// PickoffOutcome reports one throw over. StaminaDelta is always non-positive
// and is larger (more negative) on a miss, so spamming throws without a lead
// to punish bleeds the pitcher. The resolver never mutates anything itself;
// the engine applies StaminaDelta to the pitcher and the outcome to the
// stored threat state exactly once per attempt.
type PickoffOutcome struct {
	Picked       bool    `json:"picked"`
	StaminaDelta float64 `json:"stamina_delta"` // <= 0
	LeadReset    bool    `json:"lead_reset"`    // lead zeroed (runner caught leaning)
	Chance       float64 `json:"chance"`        // resolved pick probability, for telemetry
}

// SimulatePickoff draws a pickoff attempt. The pick chance rises with the
// pitcher's move and with the runner's lead: the further off the bag, the
// easier the pickout, which is exactly when the runner was about to go.
func SimulatePickoff(cfg Tuning, pitcher PitcherProfile, state *RunnerThreatState, rng RandomSource) (PickoffOutcome, error) {
	if state == nil || !state.Base.valid() {
		return PickoffOutcome{}, ErrInvalidBase
	}
	if err := validateAttr("pickoff_rating", pitcher.PickoffRating); err != nil {
		return PickoffOutcome{}, err
	}
	if rng == nil {
		rng = DefaultRNG()
	}

	chance := cfg.PickoffBaseChance +
		(pitcher.PickoffRating-50)*cfg.PickoffSkillSlope +
		state.LeadOffDistance*cfg.PickoffLeadSlope
	if chance < cfg.PickoffMinChance {
		chance = cfg.PickoffMinChance
	}
	if chance > cfg.PickoffMaxChance {
		chance = cfg.PickoffMaxChance
	}

	picked, err := drawAgainst(chance, rng)
	if err != nil {
		return PickoffOutcome{}, err
	}

	cost := cfg.PickoffStaminaBase
	if extra := (pitcher.PickoffRating - 50) * cfg.PickoffStaminaSkill; extra > 0 {
		cost += extra
	}
	if !picked {
		cost += cfg.PickoffMissSurcharge // wasted effort
	}

	return PickoffOutcome{
		Picked:       picked,
		StaminaDelta: -cost,
		LeadReset:    picked,
		Chance:       chance,
	}, nil
}
