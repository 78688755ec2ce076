package threat

// StealOutcome reports one steal attempt. Margin keeps the defense-minus-
// offense orientation: positive means the runner beat the throw with room,
// negative means the tag got there first. Narrative layers key off its size.
type StealOutcome struct {
	Success          bool    `json:"success"`
	Margin           float64 `json:"margin"`                      // seconds, after execution fuzz
	RunnerAdvancedTo Base    `json:"runner_advanced_to,omitempty"` // next base on success, 0 on an out
	Errored          bool    `json:"errored,omitempty"`           // safe only because the defense threw it away
}

// ResolveStealAttempt runs the timing race for a runner going on the pitch.
// The race is pure arithmetic over the profiles and stored threat state; the
// only randomness is the bounded symmetric execution fuzz (and the optional
// error-safe branch), both drawn from the injected source so a fixed seed
// replays the play exactly.
func ResolveStealAttempt(cfg Tuning, state *RunnerThreatState, runner RunnerProfile, pitcher PitcherProfile, catcher CatcherProfile, slideStep bool, rng RandomSource) (StealOutcome, error) {
	if state == nil || !state.Base.valid() {
		return StealOutcome{}, ErrInvalidBase
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	m := NewModel(cfg)

	pop, err := m.PopTime(catcher, catcher.Fatigue)
	if err != nil {
		return StealOutcome{}, err
	}
	delivery, err := m.DeliveryTime(pitcher, slideStep)
	if err != nil {
		return StealOutcome{}, err
	}
	defense := pop + delivery

	runTime, err := m.RunnerSpeedTime(runner.Speed, cfg.BaseDistance)
	if err != nil {
		return StealOutcome{}, err
	}
	offense := runTime - m.LeadOffAdvantage(state)
	if offense < cfg.OffenseFloor {
		offense = cfg.OffenseFloor
	}

	margin := defense - offense + symmetric(rng, cfg.FuzzHalfWidth)
	if margin > 0 {
		return StealOutcome{Success: true, Margin: margin, RunnerAdvancedTo: state.Base + 1}, nil
	}

	// Documented extension: a beaten runner can still end up safe on a
	// throwing error. Off by default (ErrorSafeProb = 0).
	if cfg.ErrorSafeProb > 0 {
		errored, derr := drawAgainst(cfg.ErrorSafeProb, rng)
		if derr != nil {
			return StealOutcome{}, derr
		}
		if errored {
			return StealOutcome{Success: true, Margin: margin, RunnerAdvancedTo: state.Base + 1, Errored: true}, nil
		}
	}
	return StealOutcome{Success: false, Margin: margin}, nil
}
