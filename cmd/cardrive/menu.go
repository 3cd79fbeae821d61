package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cardrive/internal/games/cardrive"
	"github.com/vovakirdan/cardrive/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a difficulty and browse the run history",
	Long: `Start Car Drive in interactive menu mode.

Use arrow keys or j/k to pick a difficulty, Enter to drive.
Press Esc or B between runs to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Start driving
  Tab          - Run history
  Q            - Quit

Examples:
  cardrive menu
  cardrive menu --fps 30
  cardrive menu --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	cfg := runtimeConfig()
	difficulty := s.difficulty

	for {
		menuResult, err := tui.RunMenu(s.store, cfg, difficulty)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(s.store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return
		}

		difficulty = menuResult.Difficulty
		game := cardrive.New(
			cardrive.WithDifficulty(difficulty),
			cardrive.WithLogger(s.logger),
		)

		opts := s.options()
		opts.Difficulty = string(difficulty)
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		backToMenu, runErr := tui.Run(game, cfg, opts)
		if runErr != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
			return
		}
		if !backToMenu {
			return
		}
	}
}
