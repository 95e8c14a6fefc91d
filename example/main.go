package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/philipovic/mcwatch"
)

func main() {
	// start mock status API (see mock_api.go)
	go StartMockStatusAPI(":9999")
	time.Sleep(100 * time.Millisecond)

	m, err := mcwatch.New(
		mcwatch.WithServer("demo.example.com"),
		mcwatch.WithServerType(mcwatch.ServerTypeJava),
		mcwatch.WithAPIBaseURL("http://localhost:9999"),
		mcwatch.WithCheckInterval(5*time.Second),
		mcwatch.WithOfflineThreshold(2),
		mcwatch.WithStatePath(filepath.Join(os.TempDir(), "mcwatch_demo_state.json")),
		mcwatch.WithStatusPort(8080),
	)
	if err != nil {
		slog.Error("failed to create monitor", "error", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("  ╔═══════════════════════════════════════════════════════╗")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   mcwatch Demo                                        ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   A mock status API on :9999 flips the server        ║")
	fmt.Println("  ║   between online and offline and shuffles players.   ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Notifications print to stdout.                      ║")
	fmt.Println("  ║   Current view: http://localhost:8080/api/status      ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Press Ctrl+C to stop                                ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ╚═══════════════════════════════════════════════════════╝")
	fmt.Println()

	// set up context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := m.Start(ctx); err != nil {
		slog.Error("monitor error", "error", err)
		os.Exit(1)
	}
}
