package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/cardrive/internal/config"
	"github.com/vovakirdan/cardrive/internal/games/cardrive"
	"github.com/vovakirdan/cardrive/internal/platform/tui"
	"github.com/vovakirdan/cardrive/internal/registry"
	"github.com/vovakirdan/cardrive/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagSpectate   string
	flagLogPath    string
	flagDebug      bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start driving",
	Long: `Start a Car Drive session.

Controls:
  Left/Right, A/D, H/L  - Steer
  Enter                 - Start a run
  P                     - Pause
  Ctrl+S                - Save a screenshot to ~/.cardrive/screenshots
  Q/Ctrl+C              - Quit

Difficulty options:
  easy   - Speed rises half as fast
  normal - Speed rises every 500 m
  hard   - Speed rises twice as fast
  fixed  - No progression, stays at the initial speed

Examples:
  cardrive play
  cardrive play --difficulty hard
  cardrive play --config ./my-cardrive.yaml
  cardrive play --spectate :8080`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	for _, cmd := range []*cobra.Command{playCmd, menuCmd} {
		cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
		cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
		cmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve a websocket spectator feed on this address (e.g. :8080)")
		cmd.Flags().StringVar(&flagLogPath, "log", "~/.cardrive/cardrive.log", "Log file path (empty to disable)")
		cmd.Flags().BoolVar(&flagDebug, "debug", false, "Log phase changes and speed increases")
	}
}

// session is the shared setup of the interactive commands.
type session struct {
	store      *storage.Store
	logger     *log.Logger
	spectators tui.Publisher
	difficulty config.DifficultyPreset
	cleanup    []func()
}

func (s *session) Close() {
	for i := len(s.cleanup) - 1; i >= 0; i-- {
		s.cleanup[i]()
	}
}

// openSession validates the flags and wires the logger, storage and
// spectator feed. Storage failures are reported and the game runs without scores.
func openSession(ctx context.Context) (*session, error) {
	difficulty := config.ParsePreset(flagDifficulty)
	if flagDifficulty != "" && difficulty == "" {
		return nil, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}

	level := log.InfoLevel
	if flagDebug {
		level = log.DebugLevel
	}
	logger, closeLog, err := fileLogger(flagLogPath, level)
	if err != nil {
		return nil, err
	}
	s := &session{logger: logger, difficulty: difficulty, cleanup: []func(){closeLog}}

	cardrive.SetLogger(logger)
	cardrive.SetConfigPath(flagConfig)
	cardrive.SetDifficultyPreset(flagDifficulty)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "err", err)
	} else {
		s.store = store
		s.cleanup = append(s.cleanup, func() { store.Close() })
	}

	s.spectators = startSpectators(ctx, flagSpectate, logger)
	return s, nil
}

func (s *session) options() tui.Options {
	return tui.Options{
		Store:      s.store,
		Spectators: s.spectators,
		Difficulty: string(s.difficulty),
		Logger:     s.logger,
	}
}

func runPlay(cmd *cobra.Command, _ []string) {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	game, err := registry.Create(cardrive.GameID)
	if err != nil {
		s.Close()
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	_, runErr := tui.Run(game, runtimeConfig(), s.options())
	s.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
