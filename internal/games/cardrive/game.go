// Package cardrive implements an endless-runner driving game.
// The truck steers left and right while a pool of obstacles scrolls toward
// the camera; the distance counter grows each tick and the speed rises at
// distance milestones.
package cardrive

import (
	"context"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cardrive/internal/config"
	"github.com/vovakirdan/cardrive/internal/core"
	"github.com/vovakirdan/cardrive/internal/registry"
)

// GameID is the registry and score-storage identifier.
const GameID = "cardrive"

// assetTimeout bounds how long Reset waits for model loads.
const assetTimeout = 5 * time.Second

// Player is the truck.
type Player struct {
	Pos core.Vec3
}

// World is everything a tick mutates. It is owned by the Game and handed
// to each subcomponent explicitly.
type World struct {
	Player      *Player // nil when the truck model failed to load
	Ground      *Ground // nil when the ground model failed to load
	Obstacles   []Obstacle
	Progression Progression
}

// RunSummary describes the last finished run, shown on the crash notice.
type RunSummary struct {
	Meters   int     `json:"meters"`
	TopSpeed float64 `json:"topSpeed"`
	Ticks    uint64  `json:"ticks"`
}

// Models holds the loaded sprites. Missing entries failed to load.
type Models struct {
	Truck  *Model
	Ground *Model
	Cube   *Model
}

// Game implements the Car Drive loop and state machine.
type Game struct {
	runtime  core.RuntimeConfig
	cfg      config.CarDriveConfig
	pool     *ObstaclePool
	scroller Scroller
	world    World
	phase    Phase
	paused   bool

	// Key state on the previous tick, for edge detection.
	startHeld bool
	pauseHeld bool

	tick     uint64 // Ticks since Reset
	runTicks uint64 // Ticks in the current run
	crashes  int
	lastRun  *RunSummary

	models Models
	mixer  *Mixer
	loaded bool

	loader    Loader
	logger    *log.Logger
	baseCfg   *config.CarDriveConfig
	preset    config.DifficultyPreset
	presetSet bool
}

// Option configures a Game.
type Option func(*Game)

// WithLoader replaces the model loader.
func WithLoader(l Loader) Option {
	return func(g *Game) { g.loader = l }
}

// WithLogger replaces the logger.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// WithConfig uses cfg instead of loading configuration on Reset.
func WithConfig(cfg config.CarDriveConfig) Option {
	return func(g *Game) { g.baseCfg = &cfg }
}

// WithDifficulty applies preset instead of the package-level preset.
func WithDifficulty(preset config.DifficultyPreset) Option {
	return func(g *Game) {
		g.preset = preset
		g.presetSet = true
	}
}

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset
var packageLogger = log.Default()

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetLogger sets the logger used by games created through the registry.
func SetLogger(l *log.Logger) {
	packageLogger = l
}

// New creates a new Car Drive game instance.
func New(opts ...Option) *Game {
	g := &Game{
		loader: NewEmbeddedLoader(),
		logger: packageLogger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Car Drive"
}

// Reset initializes the game: loads configuration and models, spawns the
// obstacle pool and waits in PhaseNotStarted.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	g.cfg = g.loadConfig()

	if !g.loaded {
		g.models = g.loadModels()
		g.loaded = true
	}

	rng := rand.New(rand.NewSource(runtime.Seed))
	g.pool = NewObstaclePool(rng, g.cfg.Obstacles)
	g.scroller = NewScroller(g.cfg.Ground)

	g.world = World{Progression: NewProgression(g.cfg.Progression)}
	if g.models.Truck != nil {
		g.world.Player = &Player{Pos: core.V3(0, g.cfg.Player.StartY, 0)}
		g.mixer = NewMixer(g.models.Truck)
	}
	if g.models.Ground != nil {
		g.world.Ground = &Ground{Y: g.cfg.Ground.Y, Z: g.cfg.Ground.StartZ}
	}
	if g.models.Cube != nil {
		g.world.Obstacles = g.pool.SpawnInitial(g.cfg.Obstacles.Count)
	}

	g.phase = PhaseNotStarted
	g.paused = false
	g.startHeld = false
	g.pauseHeld = false
	g.tick = 0
	g.runTicks = 0
	g.crashes = 0
	g.lastRun = nil
}

// loadConfig returns the base configuration with the difficulty preset applied.
func (g *Game) loadConfig() config.CarDriveConfig {
	var cfg config.CarDriveConfig
	if g.baseCfg != nil {
		cfg = *g.baseCfg
	} else {
		var err error
		cfg, err = config.LoadCarDrive(configPath)
		if err != nil {
			g.logger.Warn("using default config", "path", configPath, "err", err)
		}
	}

	preset := difficultyPreset
	if g.presetSet {
		preset = g.preset
	}
	config.ApplyCarDrivePreset(&cfg, preset)
	return cfg
}

// loadModels starts every model load, then awaits each one. A failed load
// is logged and leaves that entity out of the world.
func (g *Game) loadModels() Models {
	ctx, cancel := context.WithTimeout(context.Background(), assetTimeout)
	defer cancel()

	truck := LoadAsync(ctx, g.loader, ModelTruck)
	ground := LoadAsync(ctx, g.loader, ModelGround)
	cube := LoadAsync(ctx, g.loader, ModelCube)

	var models Models
	models.Truck = g.await(ctx, ModelTruck, truck)
	models.Ground = g.await(ctx, ModelGround, ground)
	models.Cube = g.await(ctx, ModelCube, cube)
	return models
}

func (g *Game) await(ctx context.Context, name string, future <-chan LoadResult) *Model {
	res := Await(ctx, future)
	if res.Err != nil {
		g.logger.Error("model load failed", "model", name, "err", res.Err)
		return nil
	}
	return res.Model
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	startPressed := in.Has(core.ActionStart) && !g.startHeld
	pausePressed := in.Has(core.ActionPause) && !g.pauseHeld
	g.startHeld = in.Has(core.ActionStart)
	g.pauseHeld = in.Has(core.ActionPause)

	var events []core.Event

	switch g.phase {
	case PhaseNotStarted:
		if startPressed {
			g.setPhase(PhasePlaying)
			g.runTicks = 0
			events = append(events, core.Event{Kind: core.EventRunStarted})
		}

	case PhasePlaying:
		if pausePressed {
			g.paused = !g.paused
		}
		if !g.paused {
			if ev, crashed := g.advance(in); crashed {
				events = append(events, ev)
			}
		}
	}

	return core.StepResult{State: g.State(), Events: events}
}

// advance runs one playing tick. It reports the end-of-run event when the
// truck crashed; the run has already been reset in that case.
func (g *Game) advance(in core.InputFrame) (core.Event, bool) {
	g.runTicks++
	w := &g.world

	if w.Player != nil {
		limit := g.cfg.Player.XLimit
		step := g.cfg.Player.LateralStep
		if in.Has(core.ActionLeft) {
			w.Player.Pos.X = core.ClampF(w.Player.Pos.X-step, -limit, limit)
		}
		if in.Has(core.ActionRight) {
			w.Player.Pos.X = core.ClampF(w.Player.Pos.X+step, -limit, limit)
		}
	}

	speed := w.Progression.Speed
	w.Obstacles = g.scroller.Advance(w.Obstacles, w.Ground, speed)
	w.Obstacles, _ = g.pool.RecyclePassed(w.Obstacles)

	if w.Player != nil && CheckCollisions(w.Player.Pos, w.Obstacles, g.cfg.Player.CollisionRadius) {
		return g.crash(), true
	}

	w.Progression.Tick()
	if w.Progression.MaybeIncreaseSpeed() {
		g.logger.Debug("speed increased", "speed", w.Progression.Speed, "distance", w.Progression.Distance)
	}

	if g.mixer != nil {
		g.mixer.Update(g.cfg.Animation.Delta)
	}
	return core.Event{}, false
}

// crash ends the run: enter PhaseOver, record the summary, reset the run
// and wait for the next start.
func (g *Game) crash() core.Event {
	g.setPhase(PhaseOver)
	g.crashes++

	p := g.world.Progression
	summary := RunSummary{
		Meters:   p.Meters(),
		TopSpeed: p.TopSpeed,
		Ticks:    g.runTicks,
	}
	g.lastRun = &summary
	g.logger.Info("run ended", "distance", summary.Meters, "top_speed", summary.TopSpeed, "ticks", summary.Ticks)

	g.resetRun()
	g.setPhase(PhaseNotStarted)

	return core.Event{
		Kind:     core.EventRunEnded,
		Score:    summary.Meters,
		TopSpeed: summary.TopSpeed,
		Ticks:    summary.Ticks,
	}
}

// resetRun restores the truck, obstacles and progression for a new run.
func (g *Game) resetRun() {
	w := &g.world
	if w.Player != nil {
		w.Player.Pos = core.V3(0, g.cfg.Player.ResetY, 0)
	}
	w.Obstacles = g.pool.Respawn(w.Obstacles)
	w.Progression.Reset()
	g.paused = false
	g.runTicks = 0
}

func (g *Game) setPhase(p Phase) {
	if p == g.phase {
		return
	}
	g.logger.Debug("phase changed", "from", g.phase.String(), "to", p.String())
	g.phase = p
}

// Phase returns the current run phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// LastRun returns the summary of the most recent crash, or nil.
func (g *Game) LastRun() *RunSummary {
	return g.lastRun
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:   g.world.Progression.Meters(),
		Playing: g.phase == PhasePlaying,
		Paused:  g.paused,
	}
}

// Register the game with the registry
func init() {
	registry.Register(GameID, "Car Drive", func() registry.Game {
		return New()
	})
}
