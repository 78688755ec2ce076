// Package engine ties the threat resolvers, the state store, and the event
// bus into one per-game-instance facade. One Engine, one rng stream, one
// store: batch simulations run many engines side by side with nothing shared.
package engine

import (
	"github.com/google/uuid"

	"github.com/sandlot-sim/baserun/internal/event"
	"github.com/sandlot-sim/baserun/internal/threat"
)

// Engine resolves baserunning threats for a single game. Not safe for
// concurrent use; the pitch loop drives it sequentially.
type Engine struct {
	ID string

	cfg   threat.Tuning
	store *threat.Store
	bus   *event.Bus
	rng   threat.RandomSource
	tick  int
}

// New creates a game instance with its own store. rng must be exclusively
// owned by this engine; pass threat.NewSeededRNG for replayable games or nil
// for the crypto default. bus may be nil when nobody listens.
func New(cfg threat.Tuning, rng threat.RandomSource, bus *event.Bus) *Engine {
	if rng == nil {
		rng = threat.DefaultRNG()
	}
	if bus == nil {
		bus = event.NewBus(nil)
	}
	return &Engine{
		ID:    uuid.NewString(),
		cfg:   cfg,
		store: threat.NewStore(cfg),
		bus:   bus,
		rng:   rng,
	}
}

// Bus exposes the outbound event surface for subscriber registration.
func (e *Engine) Bus() *event.Bus { return e.bus }

// Tuning returns the knob set this instance was built with.
func (e *Engine) Tuning() threat.Tuning { return e.cfg }

func (e *Engine) leadEvent(s *threat.RunnerThreatState) {
	e.bus.Publish(event.Event{
		Kind:     event.KindLeadUpdate,
		GameID:   e.ID,
		RunnerID: s.RunnerID,
		Base:     int(s.Base),
		Tick:     e.tick,
		Outcome: map[string]float64{
			"lead": s.LeadOffDistance,
			"jump": s.JumpQuality,
		},
	})
}

// PrepareRunner ensures threat state exists for a runner who just reached
// base and publishes the initial lead snapshot.
func (e *Engine) PrepareRunner(runnerID string, base threat.Base) (*threat.RunnerThreatState, error) {
	s, err := e.store.GetOrCreate(runnerID, base)
	if err != nil {
		return nil, err
	}
	e.leadEvent(s)
	return s, nil
}

// AdvancePitch refreshes a runner's lead/jump after a pitch and bumps the
// engine's pitch counter.
func (e *Engine) AdvancePitch(runnerID string, base threat.Base, outcome threat.PitchOutcome) (*threat.RunnerThreatState, error) {
	e.tick++
	s, err := e.store.Advance(runnerID, base, outcome, e.tick)
	if err != nil {
		return nil, err
	}
	e.leadEvent(s)
	return s, nil
}

// ClearRunner drops threat state for a runner who left the base. Idempotent.
func (e *Engine) ClearRunner(runnerID string, base threat.Base) error {
	return e.store.Clear(runnerID, base)
}

// SeedThreat force-sets a runner's lead and jump, for scenario setup and
// external tooling. Negative values keep the current state.
func (e *Engine) SeedThreat(runnerID string, base threat.Base, lead, jump float64) (*threat.RunnerThreatState, error) {
	s, err := e.store.GetOrCreate(runnerID, base)
	if err != nil {
		return nil, err
	}
	if lead >= 0 {
		s.LeadOffDistance = lead
	}
	if jump >= 0 {
		s.JumpQuality = jump
		if s.JumpQuality > e.cfg.JumpMax {
			s.JumpQuality = e.cfg.JumpMax
		}
	}
	return s, nil
}

// SetPressure records situational pressure against a runner.
func (e *Engine) SetPressure(runnerID string, base threat.Base, pressure float64) error {
	return e.store.SetPressure(runnerID, base, pressure)
}

// EvaluateSlideStep prices the delivery choice for the next pitch. Pure
// pass-through to the negotiator; nothing is recorded.
func (e *Engine) EvaluateSlideStep(p threat.PitcherProfile, useSlideStep bool, fatigue float64) (threat.SlideStepResult, error) {
	return threat.EvaluateSlideStep(e.cfg, p, useSlideStep, fatigue)
}

// AttemptSteal resolves a steal for the runner on base. The runner leaves the
// base either way (advanced or out), so the threat entry is cleared here; on
// a successful advance to second or third the caller's next PrepareRunner
// seeds fresh state at the new base.
func (e *Engine) AttemptSteal(runnerID string, base threat.Base, runner threat.RunnerProfile, pitcher threat.PitcherProfile, catcher threat.CatcherProfile, slideStep bool) (threat.StealOutcome, error) {
	s, err := e.store.GetOrCreate(runnerID, base)
	if err != nil {
		return threat.StealOutcome{}, err
	}
	out, err := threat.ResolveStealAttempt(e.cfg, s, runner, pitcher, catcher, slideStep, e.rng)
	if err != nil {
		return threat.StealOutcome{}, err
	}
	if err := e.store.Clear(runnerID, base); err != nil {
		return threat.StealOutcome{}, err
	}
	e.bus.Publish(event.Event{
		Kind:     event.KindSteal,
		GameID:   e.ID,
		RunnerID: runnerID,
		Base:     int(base),
		Tick:     e.tick,
		Outcome:  out,
	})
	return out, nil
}

// AttemptPickoff resolves a throw over. The stamina delta is applied to the
// passed pitcher profile exactly once, here; a pickout removes the runner's
// threat entry, a miss trims the lead and teaches the runner the move.
func (e *Engine) AttemptPickoff(runnerID string, base threat.Base, pitcher *threat.PitcherProfile) (threat.PickoffOutcome, error) {
	s, err := e.store.GetOrCreate(runnerID, base)
	if err != nil {
		return threat.PickoffOutcome{}, err
	}
	out, err := threat.SimulatePickoff(e.cfg, *pitcher, s, e.rng)
	if err != nil {
		return threat.PickoffOutcome{}, err
	}
	pitcher.Stamina += out.StaminaDelta
	if pitcher.Stamina < 0 {
		pitcher.Stamina = 0
	}
	if out.Picked {
		if err := e.store.Clear(runnerID, base); err != nil {
			return threat.PickoffOutcome{}, err
		}
	} else {
		if err := e.store.ApplyPickoff(runnerID, base, out, e.tick); err != nil {
			return threat.PickoffOutcome{}, err
		}
	}
	e.bus.Publish(event.Event{
		Kind:     event.KindPickoff,
		GameID:   e.ID,
		RunnerID: runnerID,
		Base:     int(base),
		Tick:     e.tick,
		Outcome:  out,
	})
	return out, nil
}

// AdvanceOnHit moves runners for a batted ball, clears threat state for every
// runner who left a base, seeds state at the new bases, and reports the runs
// scored.
func (e *Engine) AdvanceOnHit(bases *[3]*threat.BaseRunner, hit threat.HitType, batter threat.BaseRunner, outs int) (int, []threat.Movement, error) {
	runs, moves, err := threat.AdvanceOnHit(bases, hit, batter, outs, e.rng)
	if err != nil {
		return 0, nil, err
	}
	for _, mv := range moves {
		if mv.From >= threat.First && mv.From <= threat.Third {
			if err := e.store.Clear(mv.RunnerID, mv.From); err != nil {
				return 0, nil, err
			}
		}
		if mv.To >= threat.First && mv.To <= threat.Third {
			if _, err := e.PrepareRunner(mv.RunnerID, mv.To); err != nil {
				return 0, nil, err
			}
		}
	}
	return runs, moves, nil
}

// SimulateSteals runs a reproducible Monte Carlo batch for a steal matchup.
func (e *Engine) SimulateSteals(p threat.SimParams, goal threat.TrialGoal, trials int, budget *threat.SimBudget, seed uint64) (threat.Stats, error) {
	p.Tuning = e.cfg
	return threat.RunMonteCarlo(p, goal, trials, budget, seed)
}

// SimulatePickoffs measures throws over until the first pickout.
func (e *Engine) SimulatePickoffs(p threat.SimParams, trials int, seed uint64) (threat.Stats, error) {
	p.Tuning = e.cfg
	return threat.RunMonteCarlo(p, threat.GoalFirstPick, trials, nil, seed)
}
