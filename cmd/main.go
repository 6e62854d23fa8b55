// FilePath: cmd/main.go
package main

import (
	"fmt"
	"log"
	"os"

	tm "github.com/buger/goterm"
	"github.com/cpbotha/dbwriter/internal/config"
	"github.com/cpbotha/dbwriter/internal/server"
	nuts "github.com/vaudience/go-nuts"
)

func main() {
	// Clear console and draw logo
	ClearConsole()
	DrawLogo()
	// Initialize version info
	nuts.InitVersion()
	nuts.L.Infof("[Main] Starting dbwriter v%s", nuts.GetVersion())

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	nuts.L.Infof("[Main] Storing samples in %s", cfg.Database.Location())
	if cfg.Cache.Enabled {
		nuts.L.Infof("[Main] Caching sample lookups in redis at %s for %v", cfg.Cache.Addr(), cfg.Cache.TTL)
	}
	if cfg.Monitoring.MetricsEnabled {
		nuts.L.Infof("[Main] Metrics exposed at %s", cfg.Monitoring.MetricsPath)
	}

	// Create and start server
	srv := server.New(cfg)
	if err := srv.Start(); err != nil {
		nuts.L.Errorf("[Main] Server error: %v", err)
		os.Exit(1)
	}
}

// ClearConsole clears the console screen.
func ClearConsole() {
	tm.Clear()
	tm.MoveCursor(1, 1)
	tm.Flush()
}

func DrawLogo() {
	fmt.Println()
	lines := []string{
		"     ____  ____                  _ __           ",
		"    / __ \\/ __ )_      _________(_) /____  _____",
		"   / / / / __  | | /| / / ___/ / / __/ _ \\/ ___/",
		"  / /_/ / /_/ /| |/ |/ / /  / / / /_/  __/ /    ",
		" /_____/_____/ |__/|__/_/  /_/_/\\__/\\___/_/     ",
		"................................................  " + nuts.GetVersion(),
	}

	for _, line := range lines {
		fmt.Println(line)
	}
}
