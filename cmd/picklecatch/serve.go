package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/picklecatch/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagNoRecord    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the PickleCatch SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own game. Finished runs are saved as replays
in the server's database unless --no-record is given. Sessions have no sound.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.picklecatch/host_key

Examples:
  picklecatch serve                           # Listen on :23234 with auto-generated key
  picklecatch serve --ssh :2222               # Listen on port 2222
  picklecatch serve --host-key ./my_host_key  # Use specific host key
  picklecatch serve --difficulty hard         # Every session plays hard

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	addGameConfigFlags(serveCmd)
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not save replays")
}

func runServe(_ *cobra.Command, _ []string) {
	gameCfg, err := loadGameConfig()
	if err != nil {
		exitf("%v", err)
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Game:        gameCfg,
		TickRate:    flagFPS,
		Record:      !flagNoRecord,
		Logger:      newLogger("picklecatch-ssh"),
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		exitf("creating server: %v", err)
	}

	fmt.Printf("Starting PickleCatch SSH server on %s\n", cfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		exitf("server: %v", err)
	}
}
