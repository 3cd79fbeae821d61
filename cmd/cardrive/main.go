// cardrive is an endless-runner driving game for the terminal.
//
// Usage:
//
//	cardrive play            - Start driving
//	cardrive menu            - Pick a difficulty and browse the run history
//	cardrive serve           - Start SSH server for remote play
//	cardrive scores          - Show the best runs
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.cardrive/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Register the game
	_ "github.com/vovakirdan/cardrive/internal/games/cardrive"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cardrive",
	Short: "Car Drive - an endless driving game for your terminal",
	Long: `Car Drive is a terminal endless runner. Steer the truck around the
obstacles; the road speeds up every 500 meters.

Available commands:
  play     - Start driving
  menu     - Difficulty picker and run history
  serve    - Start SSH server for remote play
  scores   - View the best runs

Examples:
  cardrive play
  cardrive play --difficulty hard
  cardrive menu
  cardrive serve --ssh :2222
  cardrive scores`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.cardrive/scores.db", "Path to scores database")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
