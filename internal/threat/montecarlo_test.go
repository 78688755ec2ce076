package threat_test

import (
	"testing"

	"github.com/sandlot-sim/baserun/internal/threat"
)

func simMatchup(cfg threat.Tuning) threat.SimParams {
	return threat.SimParams{
		Runner:  threat.RunnerProfile{Speed: 85},
		Pitcher: threat.PitcherProfile{DeliveryTime: 1.35, Control: 55, PickoffRating: 60},
		Catcher: threat.CatcherProfile{ArmStrength: 60, Accuracy: 55},
		Lead:    2,
		Jump:    0.6,
		Tuning:  cfg,
	}
}

func TestMonteCarloReproducible(t *testing.T) {
	p := simMatchup(threat.DefaultTuning())
	a, err := threat.RunMonteCarlo(p, threat.GoalFirstSteal, 200, nil, 7)
	if err != nil {
		t.Fatal(err)
	}
	b, err := threat.RunMonteCarlo(p, threat.GoalFirstSteal, 200, nil, 7)
	if err != nil {
		t.Fatal(err)
	}
	if a.Mean != b.Mean || a.StdDev != b.StdDev || a.P99 != b.P99 {
		t.Fatalf("same seed must replay identically: %+v vs %+v", a, b)
	}

	c, err := threat.RunMonteCarlo(p, threat.GoalFirstSteal, 200, nil, 8)
	if err != nil {
		t.Fatal(err)
	}
	if a.Mean == c.Mean && a.Samples[0] == c.Samples[0] {
		t.Fatal("different seeds should diverge somewhere")
	}
}

func TestMonteCarloGuaranteedSteal(t *testing.T) {
	cfg := threat.DefaultTuning()
	cfg.FuzzHalfWidth = 0
	p := simMatchup(cfg)
	p.Runner.Speed = 99
	p.Lead = 3
	p.Catcher = threat.CatcherProfile{PopTime: 2.3}
	p.Pitcher = threat.PitcherProfile{DeliveryTime: 1.3}

	stats, err := threat.RunMonteCarlo(p, threat.GoalFirstSteal, 100, nil, 1)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Mean != 1 || stats.P99 != 1 || stats.StdDev != 0 {
		t.Fatalf("unbeatable runner must always go first try: %+v", stats)
	}
}

func TestMonteCarloFixedBudget(t *testing.T) {
	cfg := threat.DefaultTuning()
	cfg.FuzzHalfWidth = 0
	p := simMatchup(cfg)
	p.Runner.Speed = 99
	p.Lead = 3
	p.Catcher = threat.CatcherProfile{PopTime: 2.3}
	p.Pitcher = threat.PitcherProfile{DeliveryTime: 1.3}

	stats, err := threat.RunMonteCarlo(p, threat.GoalFixedBudget, 50, &threat.SimBudget{NumAttempts: 10}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Mean != 10 || stats.Var != 0 {
		t.Fatalf("every attempt in the budget succeeds: %+v", stats)
	}
}

func TestMonteCarloFirstPickTerminates(t *testing.T) {
	p := simMatchup(threat.DefaultTuning())
	p.Pitcher.PickoffRating = 90

	stats, err := threat.RunMonteCarlo(p, threat.GoalFirstPick, 100, nil, 3)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Mean < 1 {
		t.Fatalf("at least one throw per trial: %+v", stats)
	}
	if len(stats.Samples) != 100 {
		t.Fatalf("want 100 samples, got %d", len(stats.Samples))
	}
}

func TestMonteCarloEmptyBatch(t *testing.T) {
	stats, err := threat.RunMonteCarlo(simMatchup(threat.DefaultTuning()), threat.GoalFirstSteal, 0, nil, 1)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Mean != 0 || len(stats.Samples) != 0 {
		t.Fatalf("zero trials must yield zero stats: %+v", stats)
	}
}
