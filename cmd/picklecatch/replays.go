package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/picklecatch/internal/platform/tui"
	"github.com/vovakirdan/picklecatch/internal/replay"
	"github.com/vovakirdan/picklecatch/internal/storage"
)

var flagReplayLimit int

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "Browse, verify and watch recorded runs",
	Long: `Manage replays recorded with 'picklecatch play --record' or by the
servers. Without a subcommand, opens an interactive browser.

Replay ids may be shortened to any unique prefix.

Examples:
  picklecatch replays
  picklecatch replays list --limit 5
  picklecatch replays show 3f2a
  picklecatch replays verify 3f2a
  picklecatch replays watch 3f2a
  picklecatch replays delete 3f2a`,
	Args: cobra.NoArgs,
	Run:  runReplayBrowser,
}

var replaysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent replays",
	Args:  cobra.NoArgs,
	Run:   runReplaysList,
}

var replaysShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show replay details",
	Args:  cobra.ExactArgs(1),
	Run:   runReplaysShow,
}

var replaysVerifyCmd = &cobra.Command{
	Use:   "verify <id>",
	Short: "Re-simulate a replay and check its result",
	Args:  cobra.ExactArgs(1),
	Run:   runReplaysVerify,
}

var replaysWatchCmd = &cobra.Command{
	Use:   "watch <id>",
	Short: "Play a replay back in the terminal",
	Args:  cobra.ExactArgs(1),
	Run:   runReplaysWatch,
}

var replaysDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a replay",
	Args:  cobra.ExactArgs(1),
	Run:   runReplaysDelete,
}

func init() {
	replaysListCmd.Flags().IntVar(&flagReplayLimit, "limit", 20, "Maximum number of replays to list")
	replaysWatchCmd.Flags().BoolVar(&flagNoSound, "no-sound", false, "Disable sound")

	replaysCmd.AddCommand(replaysListCmd)
	replaysCmd.AddCommand(replaysShowCmd)
	replaysCmd.AddCommand(replaysVerifyCmd)
	replaysCmd.AddCommand(replaysWatchCmd)
	replaysCmd.AddCommand(replaysDeleteCmd)
}

// openStore opens the replay database or exits.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitf("opening replay database: %v", err)
	}
	return store
}

// loadReplay opens the store and loads one replay or exits.
func loadReplay(id string) *replay.Replay {
	store := openStore()
	defer store.Close()

	r, err := store.Replay(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrAmbiguous) {
			exitf("%v: %q", err, id)
		}
		exitf("%v", err)
	}
	return r
}

func runReplaysList(_ *cobra.Command, _ []string) {
	store := openStore()
	defer store.Close()

	infos, err := store.ListReplays(flagReplayLimit)
	if err != nil {
		store.Close()
		exitf("%v", err)
	}

	if len(infos) == 0 {
		fmt.Println("No replays recorded yet.")
		fmt.Println()
		fmt.Println("Play 'picklecatch play --record' to keep your runs!")
		return
	}

	// Print header
	fmt.Printf("  %-8s  %-6s  %-8s  %s\n", "ID", "Score", "Time", "Date")
	fmt.Printf("  %-8s  %-6s  %-8s  %s\n", "--", "-----", "----", "----")

	for _, info := range infos {
		fmt.Printf("  %-8s  %-6d  %-8s  %s\n",
			info.ID[:min(8, len(info.ID))],
			info.Score,
			fmt.Sprintf("%.1fs", info.Duration().Seconds()),
			info.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
}

func runReplaysShow(_ *cobra.Command, args []string) {
	r := loadReplay(args[0])

	fmt.Printf("Replay   %s\n", r.ID)
	fmt.Printf("Recorded %s\n", r.RecordedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("Score    %d\n", r.Score)
	fmt.Printf("Duration %.1fs (%d ticks, %d frames)\n", r.Duration().Seconds(), r.Ticks, len(r.Frames))
	fmt.Printf("Seed     %d\n", r.Seed)
	fmt.Printf("Canvas   %gx%g\n", r.Canvas.W, r.Canvas.H)
	fmt.Printf("Hash     %016x\n", r.Hash)
}

func runReplaysVerify(_ *cobra.Command, args []string) {
	r := loadReplay(args[0])

	if err := replay.Verify(r); err != nil {
		exitf("%v", err)
	}
	fmt.Printf("OK: replay %s reproduces score %d (hash %016x)\n", r.ID, r.Score, r.Hash)
}

func runReplaysWatch(_ *cobra.Command, args []string) {
	r := loadReplay(args[0])
	width, height := terminalSize()
	sounds, closeSounds := openSounds()
	defer closeSounds()

	if err := tui.RunWatch(r, sounds, width, height, flagFPS); err != nil {
		exitf("%v", err)
	}
}

func runReplaysDelete(_ *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	if err := store.DeleteReplay(args[0]); err != nil {
		store.Close()
		exitf("%v", err)
	}
	fmt.Println("Deleted.")
}

// runReplayBrowser alternates between the replay table and playback until
// the user quits the table.
func runReplayBrowser(_ *cobra.Command, _ []string) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		runReplaysList(nil, nil)
		return
	}

	store := openStore()
	defer store.Close()

	for {
		width, height := terminalSize()
		selected, err := tui.RunReplayBrowser(store, width, height)
		if err != nil {
			store.Close()
			exitf("%v", err)
		}
		if selected == nil {
			return
		}
		if err := tui.RunWatch(selected, nil, width, height, flagFPS); err != nil {
			store.Close()
			exitf("%v", err)
		}
	}
}
