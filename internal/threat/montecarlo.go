package threat

import (
	"math"
	"sort"
)

// TrialGoal selects what one simulation trial measures.
type TrialGoal string

const (
	// Attempts until the runner's first successful steal.
	GoalFirstSteal TrialGoal = "first_steal"
	// Throws over until the first pickout.
	GoalFirstPick TrialGoal = "first_pick"
	// Successful steals within a fixed attempt budget.
	GoalFixedBudget TrialGoal = "fixed_budget"
)

// SimParams fixes one matchup for a batch run.
type SimParams struct {
	Runner  RunnerProfile
	Pitcher PitcherProfile
	Catcher CatcherProfile

	SlideStep bool
	Lead      float64 // starting lead for each trial
	Jump      float64 // starting jump quality
	Pressure  float64

	Tuning Tuning
}

// SimBudget bounds a GoalFixedBudget trial.
type SimBudget struct {
	NumAttempts int
}

// Stats summarizes a batch of trials.
type Stats struct {
	Mean   float64
	Var    float64
	StdDev float64
	P50    float64
	P90    float64
	P99    float64
	// Raw samples for callers that build histograms.
	Samples []int `json:"-"`
}

func calcStats(xs []int) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}
	var sum float64
	for _, v := range xs {
		sum += float64(v)
	}
	mean := sum / float64(n)

	var acc float64
	for _, v := range xs {
		d := float64(v) - mean
		acc += d * d
	}
	variance := acc / float64(n)

	cp := append([]int(nil), xs...)
	sort.Ints(cp)
	percentile := func(p float64) float64 {
		if n == 1 || p <= 0 {
			return float64(cp[0])
		}
		if p >= 1 {
			return float64(cp[n-1])
		}
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		f := pos - float64(i)
		if i+1 >= n {
			return float64(cp[i])
		}
		return float64(cp[i])*(1-f) + float64(cp[i+1])*f
	}

	return Stats{
		Mean:    mean,
		Var:     variance,
		StdDev:  math.Sqrt(variance),
		P50:     percentile(0.50),
		P90:     percentile(0.90),
		P99:     percentile(0.99),
		Samples: cp,
	}
}

// trialState builds a fresh threat record for one trial.
func trialState(p SimParams) *RunnerThreatState {
	s := &RunnerThreatState{
		RunnerID:        "sim",
		Base:            First,
		LeadOffDistance: p.Lead,
		JumpQuality:     p.Jump,
		Pressure:        p.Pressure,
	}
	if s.LeadOffDistance < 0 {
		s.LeadOffDistance = 0
	}
	return s
}

// simulateOne runs a single trial with its own rng stream.
func simulateOne(p SimParams, goal TrialGoal, budget *SimBudget, rng RandomSource) (int, error) {
	const maxAttempts = 1 << 20 // fuzz can make a matchup unwinnable; bail out

	switch goal {
	case GoalFirstSteal:
		state := trialState(p)
		for attempts := 1; attempts <= maxAttempts; attempts++ {
			out, err := ResolveStealAttempt(p.Tuning, state, p.Runner, p.Pitcher, p.Catcher, p.SlideStep, rng)
			if err != nil {
				return 0, err
			}
			if out.Success {
				return attempts, nil
			}
		}
		return maxAttempts, nil

	case GoalFirstPick:
		state := trialState(p)
		cfg := p.Tuning
		for attempts := 1; attempts <= maxAttempts; attempts++ {
			out, err := SimulatePickoff(cfg, p.Pitcher, state, rng)
			if err != nil {
				return 0, err
			}
			if out.Picked {
				return attempts, nil
			}
			// held runner shortens up, same as the live rules
			state.adjustLead(-cfg.HoldLeadTrim)
			state.adjustJump(cfg.MissJumpGain, cfg.JumpMax)
		}
		return maxAttempts, nil

	case GoalFixedBudget:
		if budget == nil || budget.NumAttempts <= 0 {
			return 0, nil
		}
		count := 0
		for i := 0; i < budget.NumAttempts; i++ {
			state := trialState(p)
			out, err := ResolveStealAttempt(p.Tuning, state, p.Runner, p.Pitcher, p.Catcher, p.SlideStep, rng)
			if err != nil {
				return 0, err
			}
			if out.Success {
				count++
			}
		}
		return count, nil
	}

	return 0, nil
}

// RunMonteCarlo repeats trials and summarizes. Each trial gets its own seeded
// stream derived from baseSeed, so batches are reproducible and trials stay
// independent (parallel composition of isolated single-threaded runs).
func RunMonteCarlo(p SimParams, goal TrialGoal, trials int, budget *SimBudget, baseSeed uint64) (Stats, error) {
	if trials <= 0 {
		return Stats{}, nil
	}
	samples := make([]int, trials)
	for i := 0; i < trials; i++ {
		rng := NewSeededRNG(baseSeed + uint64(i))
		v, err := simulateOne(p, goal, budget, rng)
		if err != nil {
			return Stats{}, err
		}
		samples[i] = v
	}
	return calcStats(samples), nil
}
