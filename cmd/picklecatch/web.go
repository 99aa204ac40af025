package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/picklecatch/internal/platform/web"
	"github.com/vovakirdan/picklecatch/internal/storage"
)

var (
	flagWebAddr    string
	flagQR         bool
	flagWebNoStore bool
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the browser client",
	Long: `Serve PickleCatch over HTTP. Every browser tab gets its own game running
on the server; the page only draws frames and sends input.

Use --qr to print a QR code of the join URL so phones on the same network
can scan it and play with touch.

Examples:
  picklecatch web
  picklecatch web --addr :9000 --qr
  picklecatch web --difficulty easy --no-record`,
	Args: cobra.NoArgs,
	Run:  runWeb,
}

func init() {
	addGameConfigFlags(webCmd)
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address")
	webCmd.Flags().BoolVar(&flagQR, "qr", false, "Print a QR code of the join URL")
	webCmd.Flags().BoolVar(&flagWebNoStore, "no-record", false, "Do not save replays")
}

func runWeb(_ *cobra.Command, _ []string) {
	gameCfg, err := loadGameConfig()
	if err != nil {
		exitf("%v", err)
	}
	logger := newLogger("picklecatch-web")

	var store *storage.Store
	if !flagWebNoStore {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open replay database", "error", err)
			// Continue without storage
			store = nil
		} else {
			defer store.Close()
		}
	}

	server := web.NewServer(web.ServerConfig{
		Addr:     flagWebAddr,
		Game:     gameCfg,
		TickRate: flagFPS,
		Seed:     flagSeed,
		Record:   !flagWebNoStore,
		Store:    store,
		Logger:   logger,
	})

	url := web.JoinURL(flagWebAddr)
	fmt.Printf("PickleCatch is live at %s\n", url)
	if flagQR {
		printQR(url)
	}
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx); err != nil {
		exitf("%v", err)
	}
}

func printQR(url string) {
	q, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot build QR code: %v\n", err)
		return
	}
	fmt.Println(q.ToSmallString(false))
}
