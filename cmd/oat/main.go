package main

import (
	"fmt"
	"os"

	"github.com/openanyterminal/linux/pkg/bridge"
	"github.com/openanyterminal/linux/pkg/launcher"
	"github.com/openanyterminal/linux/pkg/menu"
	"github.com/openanyterminal/linux/pkg/settings"
)

// Version injected at build time
var version = "dev"

// hostAPIVersion is what oat announces in the bridge handshake. The menu
// surface is all an activation needs.
const hostAPIVersion = 4

func main() {
	// Debug incoming args
	if os.Getenv("OAT_DEBUG") != "" {
		fmt.Fprintf(os.Stderr, "OAT Debug: args = %v\n", os.Args)
	}

	// Handle version flag only if it's the only argument
	if len(os.Args) == 2 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("oat version %s\n", version)
		os.Exit(0)
	}

	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: oat <uri>...\n")
		os.Exit(2)
	}

	if err := openAll(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "oat: %v\n", err)
		os.Exit(1)
	}
}

// openAll forwards every uri to a running bridge. When no bridge is
// listening the uris are opened in process instead. A bridge that answers
// with an error is authoritative; there is no second attempt.
func openAll(uris []string) error {
	c, err := bridge.Dial(socketPath(), hostAPIVersion)
	if err != nil {
		debugf("no bridge at %s: %v", socketPath(), err)
		return openDirect(uris)
	}
	defer c.Close()

	for _, uri := range uris {
		debugf("forwarding %s to bridge", uri)
		if err := c.Activate(menu.FileItemName, uri); err != nil {
			return fmt.Errorf("failed to open %s: %w", uri, err)
		}
	}
	return nil
}

// openDirect resolves the settings in process and launches a terminal for
// every uri.
func openDirect(uris []string) error {
	st := settings.Load(settings.DefaultPath())
	if err := st.MergeEnv(); err != nil {
		debugf("environment overrides ignored: %v", err)
	}

	app := launcher.NewApp(st, nil)
	app.Start()
	defer app.Stop()

	for _, uri := range uris {
		debugf("opening %s directly", uri)
		var err error
		app.Do(func() { err = app.OpenURI(uri) })
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", uri, err)
		}
	}
	return nil
}

func socketPath() string {
	if path := os.Getenv("OAT_SOCKET"); path != "" {
		return path
	}
	return bridge.DefaultSocketPath
}

func debugf(format string, args ...interface{}) {
	if os.Getenv("OAT_DEBUG") != "" {
		fmt.Fprintf(os.Stderr, "OAT Debug: "+format+"\n", args...)
	}
}
