package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"

	"github.com/sandlot-sim/baserun/internal/engine"
	"github.com/sandlot-sim/baserun/internal/event"
	"github.com/sandlot-sim/baserun/internal/threat"
	"github.com/sandlot-sim/baserun/internal/tuning"
)

type stealResp struct {
	Success    bool    `json:"success"`
	Margin     float64 `json:"margin"`
	AdvancedTo int     `json:"advanced_to,omitempty"`
	Errored    bool    `json:"errored,omitempty"`
	Err        string  `json:"err,omitempty"`
}

type pickoffResp struct {
	Picked       bool    `json:"picked"`
	StaminaDelta float64 `json:"stamina_delta"`
	LeadReset    bool    `json:"lead_reset"`
	Chance       float64 `json:"chance"`
	Stamina      float64 `json:"stamina"`
	Err          string  `json:"err,omitempty"`
}

type slideStepResp struct {
	Used            bool    `json:"used"`
	DeliveryTime    float64 `json:"delivery_time"`
	VelocityPenalty float64 `json:"velocity_penalty"`
	ControlPenalty  float64 `json:"control_penalty"`
	Err             string  `json:"err,omitempty"`
}

type advanceResp struct {
	Runs  int               `json:"runs"`
	Moves []threat.Movement `json:"moves"`
	Err   string            `json:"err,omitempty"`
}

type simulateResp struct {
	Mean   float64 `json:"mean"`
	Var    float64 `json:"var"`
	StdDev float64 `json:"stddev"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
	P99    float64 `json:"p99"`
	Err    string  `json:"err,omitempty"`
}

func parseFloat(r *http.Request, key string, def float64) (float64, string) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def, ""
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, "invalid " + key
	}
	return v, ""
}

func parseInt(r *http.Request, key string, def int) (int, string) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def, ""
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, "invalid " + key
	}
	return v, ""
}

func parseBool(r *http.Request, key string) bool {
	switch r.URL.Query().Get(key) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// server holds one engine per game id so successive calls for the same game
// share threat state and the same rng stream.
type server struct {
	mu      sync.Mutex
	engines map[string]*engine.Engine

	cfgMu sync.RWMutex
	cfg   threat.Tuning
}

func (s *server) tuning() threat.Tuning {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.cfg
}

func (s *server) setTuning(cfg threat.Tuning) {
	s.cfgMu.Lock()
	s.cfg = cfg
	s.cfgMu.Unlock()
}

// getEngine returns the engine for a game id, creating it on first use. seed
// only matters at creation; 0 means non-replayable crypto randomness.
func (s *server) getEngine(game string, seed uint64) *engine.Engine {
	if game == "" {
		game = "default"
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.engines[game]; ok {
		return e
	}
	var rng threat.RandomSource
	if seed != 0 {
		rng = threat.NewSeededRNG(seed)
	}
	e := engine.New(s.tuning(), rng, nil)
	s.engines[game] = e
	return e
}

func pitcherFromQuery(r *http.Request) (threat.PitcherProfile, string) {
	var p threat.PitcherProfile
	var msg string
	if p.DeliveryTime, msg = parseFloat(r, "delivery", 0); msg != "" {
		return p, msg
	}
	if p.Control, msg = parseFloat(r, "control", 50); msg != "" {
		return p, msg
	}
	if p.Velocity, msg = parseFloat(r, "velocity", 50); msg != "" {
		return p, msg
	}
	if p.Stamina, msg = parseFloat(r, "stamina", 100); msg != "" {
		return p, msg
	}
	p.PickoffRating, msg = parseFloat(r, "pickoff_rating", 50)
	return p, msg
}

func catcherFromQuery(r *http.Request) (threat.CatcherProfile, string) {
	var c threat.CatcherProfile
	var msg string
	if c.ArmStrength, msg = parseFloat(r, "arm", 50); msg != "" {
		return c, msg
	}
	if c.Accuracy, msg = parseFloat(r, "accuracy", 50); msg != "" {
		return c, msg
	}
	if c.PopTime, msg = parseFloat(r, "pop", 0); msg != "" {
		return c, msg
	}
	c.Fatigue, msg = parseFloat(r, "catcher_fatigue", 0)
	return c, msg
}

func (s *server) handleSteal(w http.ResponseWriter, r *http.Request) {
	seed, msg := parseInt(r, "seed", 0)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, stealResp{Err: msg})
		return
	}
	e := s.getEngine(r.URL.Query().Get("game"), uint64(seed))

	runnerID := r.URL.Query().Get("runner")
	if runnerID == "" {
		writeJSON(w, http.StatusBadRequest, stealResp{Err: "missing param runner"})
		return
	}
	base, msg := parseInt(r, "base", 1)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, stealResp{Err: msg})
		return
	}
	speed, msg := parseFloat(r, "speed", 50)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, stealResp{Err: msg})
		return
	}
	pitcher, msg := pitcherFromQuery(r)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, stealResp{Err: msg})
		return
	}
	catcher, msg := catcherFromQuery(r)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, stealResp{Err: msg})
		return
	}
	lead, msg := parseFloat(r, "lead", -1)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, stealResp{Err: msg})
		return
	}
	jump, msg := parseFloat(r, "jump", -1)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, stealResp{Err: msg})
		return
	}
	if _, err := e.SeedThreat(runnerID, threat.Base(base), lead, jump); err != nil {
		writeJSON(w, http.StatusBadRequest, stealResp{Err: err.Error()})
		return
	}

	out, err := e.AttemptSteal(runnerID, threat.Base(base), threat.RunnerProfile{Speed: speed}, pitcher, catcher, parseBool(r, "slide"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, stealResp{Err: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stealResp{
		Success:    out.Success,
		Margin:     out.Margin,
		AdvancedTo: int(out.RunnerAdvancedTo),
		Errored:    out.Errored,
	})
}

func (s *server) handlePickoff(w http.ResponseWriter, r *http.Request) {
	seed, msg := parseInt(r, "seed", 0)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, pickoffResp{Err: msg})
		return
	}
	e := s.getEngine(r.URL.Query().Get("game"), uint64(seed))

	runnerID := r.URL.Query().Get("runner")
	if runnerID == "" {
		writeJSON(w, http.StatusBadRequest, pickoffResp{Err: "missing param runner"})
		return
	}
	base, msg := parseInt(r, "base", 1)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, pickoffResp{Err: msg})
		return
	}
	pitcher, msg := pitcherFromQuery(r)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, pickoffResp{Err: msg})
		return
	}
	lead, msg := parseFloat(r, "lead", -1)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, pickoffResp{Err: msg})
		return
	}
	if _, err := e.SeedThreat(runnerID, threat.Base(base), lead, -1); err != nil {
		writeJSON(w, http.StatusBadRequest, pickoffResp{Err: err.Error()})
		return
	}

	out, err := e.AttemptPickoff(runnerID, threat.Base(base), &pitcher)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, pickoffResp{Err: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, pickoffResp{
		Picked:       out.Picked,
		StaminaDelta: out.StaminaDelta,
		LeadReset:    out.LeadReset,
		Chance:       out.Chance,
		Stamina:      pitcher.Stamina,
	})
}

func (s *server) handleSlideStep(w http.ResponseWriter, r *http.Request) {
	pitcher, msg := pitcherFromQuery(r)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, slideStepResp{Err: msg})
		return
	}
	fatigue, msg := parseFloat(r, "fatigue", 0)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, slideStepResp{Err: msg})
		return
	}
	out, err := threat.EvaluateSlideStep(s.tuning(), pitcher, parseBool(r, "slide"), fatigue)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, slideStepResp{Err: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, slideStepResp{
		Used:            out.UsedSlideStep,
		DeliveryTime:    out.DeliveryTime,
		VelocityPenalty: out.VelocityPenalty,
		ControlPenalty:  out.ControlPenalty,
	})
}

func (s *server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	seed, msg := parseInt(r, "seed", 0)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, advanceResp{Err: msg})
		return
	}
	e := s.getEngine(r.URL.Query().Get("game"), uint64(seed))

	outs, msg := parseInt(r, "outs", 0)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, advanceResp{Err: msg})
		return
	}
	var bases [3]*threat.BaseRunner
	for i, key := range []string{"r1", "r2", "r3"} {
		id := r.URL.Query().Get(key)
		if id == "" {
			continue
		}
		speed, msg := parseFloat(r, key+"_speed", 50)
		if msg != "" {
			writeJSON(w, http.StatusBadRequest, advanceResp{Err: msg})
			return
		}
		bases[i] = &threat.BaseRunner{ID: id, Speed: speed}
	}
	batterID := r.URL.Query().Get("batter")
	if batterID == "" {
		writeJSON(w, http.StatusBadRequest, advanceResp{Err: "missing param batter"})
		return
	}
	batterSpeed, msg := parseFloat(r, "batter_speed", 50)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, advanceResp{Err: msg})
		return
	}

	runs, moves, err := e.AdvanceOnHit(&bases, threat.HitType(r.URL.Query().Get("hit")), threat.BaseRunner{ID: batterID, Speed: batterSpeed}, outs)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, advanceResp{Err: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, advanceResp{Runs: runs, Moves: moves})
}

func (s *server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	trials, msg := parseInt(r, "trials", 1000)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, simulateResp{Err: msg})
		return
	}
	seed, msg := parseInt(r, "seed", 1)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, simulateResp{Err: msg})
		return
	}
	speed, msg := parseFloat(r, "speed", 50)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, simulateResp{Err: msg})
		return
	}
	pitcher, msg := pitcherFromQuery(r)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, simulateResp{Err: msg})
		return
	}
	catcher, msg := catcherFromQuery(r)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, simulateResp{Err: msg})
		return
	}
	lead, msg := parseFloat(r, "lead", 0)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, simulateResp{Err: msg})
		return
	}
	jump, msg := parseFloat(r, "jump", 0.5)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, simulateResp{Err: msg})
		return
	}
	budgetN, msg := parseInt(r, "budget", 0)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, simulateResp{Err: msg})
		return
	}

	goal := threat.TrialGoal(r.URL.Query().Get("goal"))
	if goal == "" {
		goal = threat.GoalFirstSteal
	}
	var budget *threat.SimBudget
	if budgetN > 0 {
		budget = &threat.SimBudget{NumAttempts: budgetN}
	}
	params := threat.SimParams{
		Runner:    threat.RunnerProfile{Speed: speed},
		Pitcher:   pitcher,
		Catcher:   catcher,
		SlideStep: parseBool(r, "slide"),
		Lead:      lead,
		Jump:      jump,
		Tuning:    s.tuning(),
	}
	stats, err := threat.RunMonteCarlo(params, goal, trials, budget, uint64(seed))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, simulateResp{Err: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, simulateResp{
		Mean: stats.Mean, Var: stats.Var, StdDev: stats.StdDev,
		P50: stats.P50, P90: stats.P90, P99: stats.P99,
	})
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// handleEvents streams every bus event for one game over a websocket.
func (s *server) handleEvents(w http.ResponseWriter, r *http.Request) {
	e := s.getEngine(r.URL.Query().Get("game"), 0)
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("events: upgrade failed: %v", err)
		return
	}

	var wmu sync.Mutex
	var once sync.Once
	done := make(chan struct{})
	closeDone := func() { once.Do(func() { close(done) }) }

	token := e.Bus().SubscribeAll(func(ev event.Event) {
		wmu.Lock()
		defer wmu.Unlock()
		if err := conn.WriteJSON(ev); err != nil {
			closeDone()
		}
	})

	// the reader only exists to notice the peer going away
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				closeDone()
				return
			}
		}
	}()

	<-done
	e.Bus().UnsubscribeAll(token)
	_ = conn.Close()
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}
	addr := envOr("LISTEN_ADDR", ":8080")
	configDir := envOr("TUNING_DIR", "configs")
	profile := os.Getenv("TUNING_PROFILE")

	loader := tuning.NewLoader(configDir)
	cfg, err := loader.Resolve(profile)
	if err != nil {
		log.Fatalf("load tuning: %v", err)
	}

	srv := &server{engines: make(map[string]*engine.Engine), cfg: cfg}

	paths := tuning.Paths{BaseDir: configDir}
	watchPaths := []string{paths.DefaultPath()}
	if profile != "" {
		watchPaths = append(watchPaths, paths.ProfilePath(profile))
	}
	watcher := tuning.NewWatcher(watchPaths, 5*time.Second, func(path string) {
		loader.Invalidate()
		next, err := loader.Resolve(profile)
		if err != nil {
			log.Printf("tuning reload rejected (%s): %v", path, err)
			return
		}
		srv.setTuning(next)
		log.Printf("tuning reloaded from %s; applies to new games", path)
	})
	watcher.Start()
	defer watcher.Stop()

	http.HandleFunc("/steal", srv.handleSteal)
	http.HandleFunc("/pickoff", srv.handlePickoff)
	http.HandleFunc("/slide_step", srv.handleSlideStep)
	http.HandleFunc("/advance", srv.handleAdvance)
	http.HandleFunc("/simulate", srv.handleSimulate)
	http.HandleFunc("/events", srv.handleEvents)

	log.Printf("listening on %s (profile=%q) ...", addr, profile)
	log.Fatal(http.ListenAndServe(addr, nil))
}
