package threat

import "fmt"

// HitType tags the batted-ball result driving runner advancement.
type HitType string

const (
	HitSingle HitType = "1B"
	HitDouble HitType = "2B"
	HitTriple HitType = "3B"
	HitHomer  HitType = "HR"
)

// Advancement chances. Teams push harder with two outs; speed shifts every
// extra-base decision.
const (
	twoOutAggression = 0.15

	scoreFromSecondBase = 0.45 // on a single
	scoreFromSecondMin  = 0.25
	scoreFromSecondMax  = 0.95

	firstToThirdBase = 0.25 // on a single
	firstToThirdMin  = 0.05
	firstToThirdMax  = 0.8

	scoreFromFirstBase = 0.55 // on a double
	scoreFromFirstMin  = 0.3
	scoreFromFirstMax  = 0.97

	speedScoreSlope = 0.01
	speedThirdSlope = 0.008
)

// BaseRunner is the minimal occupancy view the advancement rules need.
type BaseRunner struct {
	ID    string
	Speed float64
}

// Movement records one runner changing bases (To == Home means a run).
type Movement struct {
	RunnerID string `json:"runner_id"`
	From     Base   `json:"from"` // 0 for the batter
	To       Base   `json:"to"`
}

func clampProb(p, lo, hi float64) float64 {
	if p < lo {
		return lo
	}
	if p > hi {
		return hi
	}
	return p
}

// AdvanceOnHit moves runners for a hit and returns the runs scored plus the
// full movement list so the caller can clear and re-seed threat state.
// bases[0..2] are first through third; entries are nilled/overwritten in
// place. Extra-base decisions (score from second on a single, first to
// third, score from first on a double) draw from the injected source.
func AdvanceOnHit(bases *[3]*BaseRunner, hit HitType, batter BaseRunner, outs int, rng RandomSource) (int, []Movement, error) {
	if bases == nil {
		return 0, nil, fmt.Errorf("advance: nil base occupancy")
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	aggr := 0.0
	if outs == 2 {
		aggr = twoOutAggression
	}

	r1, r2, r3 := bases[0], bases[1], bases[2]
	bases[0], bases[1], bases[2] = nil, nil, nil

	runs := 0
	var moves []Movement
	score := func(r *BaseRunner, from Base) {
		runs++
		moves = append(moves, Movement{RunnerID: r.ID, From: from, To: Home})
	}
	place := func(r *BaseRunner, from, to Base) {
		bases[to-1] = r
		moves = append(moves, Movement{RunnerID: r.ID, From: from, To: to})
	}

	switch hit {
	case HitHomer:
		if r3 != nil {
			score(r3, Third)
		}
		if r2 != nil {
			score(r2, Second)
		}
		if r1 != nil {
			score(r1, First)
		}
		runs++
		moves = append(moves, Movement{RunnerID: batter.ID, To: Home})

	case HitSingle:
		if r3 != nil {
			score(r3, Third)
		}
		if r2 != nil {
			p := clampProb(scoreFromSecondBase+(r2.Speed-50)*speedScoreSlope+aggr, scoreFromSecondMin, scoreFromSecondMax)
			if rng.Float64() < p {
				score(r2, Second)
			} else {
				place(r2, Second, Third)
			}
		}
		if r1 != nil {
			p := clampProb(firstToThirdBase+(r1.Speed-50)*speedThirdSlope+aggr/2, firstToThirdMin, firstToThirdMax)
			if bases[2] == nil && rng.Float64() < p {
				place(r1, First, Third)
			} else {
				place(r1, First, Second)
			}
		}
		place(&batter, 0, First)

	case HitDouble:
		if r3 != nil {
			score(r3, Third)
		}
		if r2 != nil {
			score(r2, Second)
		}
		if r1 != nil {
			p := clampProb(scoreFromFirstBase+(r1.Speed-50)*speedScoreSlope+aggr, scoreFromFirstMin, scoreFromFirstMax)
			if rng.Float64() < p {
				score(r1, First)
			} else {
				place(r1, First, Third)
			}
		}
		place(&batter, 0, Second)

	case HitTriple:
		if r3 != nil {
			score(r3, Third)
		}
		if r2 != nil {
			score(r2, Second)
		}
		if r1 != nil {
			score(r1, First)
		}
		place(&batter, 0, Third)

	default:
		return 0, nil, fmt.Errorf("advance: unknown hit type %q", hit)
	}

	return runs, moves, nil
}
