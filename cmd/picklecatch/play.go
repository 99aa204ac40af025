package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/picklecatch/internal/audio"
	"github.com/vovakirdan/picklecatch/internal/core"
	"github.com/vovakirdan/picklecatch/internal/platform/tui"
	"github.com/vovakirdan/picklecatch/internal/storage"
)

var (
	flagNoSound bool
	flagRecord  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in the current terminal.

Controls:
  Mouse          - Move the bottle
  Left/Right     - Move the bottle (also h/l, a/d)
  Space/Click    - Start, or play again after game over
  C              - Toggle autopilot
  Ctrl+S         - Save a text screenshot
  ?              - Toggle help
  Q/Ctrl+C       - Quit

Difficulty options (a selector is shown when --difficulty is omitted):
  easy   - Slower balls, longer gaps between bursts
  normal - Default settings
  hard   - Faster balls, shorter gaps
  fixed  - No escalation, stays at the config's starting values

Examples:
  picklecatch play
  picklecatch play --difficulty easy
  picklecatch play --record --seed 42
  picklecatch play --config ./my-picklecatch.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	addGameConfigFlags(playCmd)
	playCmd.Flags().BoolVar(&flagNoSound, "no-sound", false, "Disable sound")
	playCmd.Flags().BoolVar(&flagRecord, "record", false, "Save a replay of every finished run")
}

func runPlay(_ *cobra.Command, _ []string) {
	width, height := terminalSize()

	// Ask for a difficulty unless one was given
	if flagDifficulty == "" && term.IsTerminal(int(os.Stdout.Fd())) {
		preset, err := tui.RunDifficultySelector(width, height)
		if err != nil {
			exitf("%v", err)
		}
		// User quit
		if preset == nil {
			return
		}
		flagDifficulty = string(*preset)
	}

	gameCfg, err := loadGameConfig()
	if err != nil {
		exitf("%v", err)
	}

	sounds, closeSounds := openSounds()
	defer closeSounds()

	var store *storage.Store
	if flagRecord {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open replay database: %v\n", err)
			// Continue without storage - runs are still recorded in memory
			store = nil
		}
	}

	final, runErr := tui.Run(tui.Options{
		Game: gameCfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Store:  store,
		Sounds: sounds,
		Record: flagRecord,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		exitf("running game: %v", runErr)
	}

	if r := final.LastReplay(); r != nil {
		fmt.Printf("Last run: score %d in %.1fs (replay %s)\n", r.Score, r.Duration().Seconds(), r.ID)
	}
}

// openSounds opens the speaker unless --no-sound is set. Sound is
// best-effort: no device means a silent game.
func openSounds() (tui.SoundPlayer, func()) {
	if flagNoSound {
		return nil, func() {}
	}
	player := audio.NewPlayer()
	if err := player.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (playing without sound)\n", err)
		return nil, func() {}
	}
	return player, player.Close
}

// terminalSize returns the stdout size, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}
