package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/openanyterminal/linux/pkg/api"
	"github.com/openanyterminal/linux/pkg/bridge"
	"github.com/openanyterminal/linux/pkg/launcher"
	"github.com/openanyterminal/linux/pkg/locale"
	"github.com/openanyterminal/linux/pkg/menu"
	"github.com/openanyterminal/linux/pkg/settings"
	"github.com/openanyterminal/linux/pkg/terminal"
)

var (
	// Version injected at build time
	version = "dev"

	// Terminal selection overrides
	terminalID  string
	newTab      bool
	flatpakMode string
	keybindings string

	// Registry inspection
	listTerminals bool

	// Host bridge flags
	serve      bool
	socketPath string
	hostAPI    int

	// Control API flags
	apiEnabled  bool
	apiAddr     string
	apiPassword string

	// Settings file
	settingsFile string
)

var rootCmd = &cobra.Command{
	Use:   "open-any-terminal [uri...]",
	Short: "open-any-terminal - Open your favourite terminal anywhere",
	Long: `open-any-terminal opens a configurable terminal emulator in local or remote
directories. It powers the file-manager context menu entries and can run as
a host bridge for the file-manager shim.`,
	RunE: run,
	// Allow positional arguments after flags (directories to open)
	Args: cobra.ArbitraryArgs,
}

func init() {
	// Terminal selection overrides (take precedence over the settings file)
	rootCmd.Flags().StringVar(&terminalID, "terminal", "", "Terminal emulator to open")
	rootCmd.Flags().BoolVar(&newTab, "new-tab", false, "Open a tab instead of a window when supported")
	rootCmd.Flags().StringVar(&flatpakMode, "flatpak", "", "Launch through flatpak (off, system, user)")
	rootCmd.Flags().StringVar(&keybindings, "keybindings", "", "Shortcut accelerator served to the host, e.g. <Ctrl><Alt>t")

	// Registry inspection
	rootCmd.Flags().BoolVar(&listTerminals, "list-terminals", false, "List supported terminal emulators")

	// Host bridge flags
	rootCmd.Flags().BoolVar(&serve, "serve", false, "Run the host bridge for the file-manager shim")
	rootCmd.Flags().StringVar(&socketPath, "socket", bridge.DefaultSocketPath, "Bridge socket path")
	rootCmd.Flags().IntVar(&hostAPI, "host-api", 0, "Host API generation assumed when the shim announces none")

	// Control API flags
	rootCmd.Flags().BoolVar(&apiEnabled, "api", false, "Start the control API alongside the bridge")
	rootCmd.Flags().StringVar(&apiAddr, "api-addr", api.DefaultAddr, "Control API listen address")
	rootCmd.Flags().StringVar(&apiPassword, "api-password", "", "Control API password for Basic Auth")

	// Settings file
	rootCmd.Flags().StringVarP(&settingsFile, "settings", "c", settings.DefaultPath(), "Settings file path")

	// Add version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("open-any-terminal v%s\n", version)
			fmt.Printf("%d supported terminal emulators\n", len(terminal.Identifiers()))
		},
	})

	// Add config command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "config",
		Short: "Show configuration",
		Run: func(cmd *cobra.Command, args []string) {
			st := settings.Load(settingsFile)
			st.Print()
		},
	})
}

func run(cmd *cobra.Command, args []string) error {
	// Precedence: settings file, then OAT_* environment, then CLI flags
	st := settings.Load(settingsFile)
	if err := st.MergeEnv(); err != nil {
		fmt.Printf("Warning: environment overrides ignored: %v\n", err)
	}
	st.MergeFlags(cmd.Flags())

	if listTerminals {
		printTerminals()
		return nil
	}

	if serve {
		return runBridge(st)
	}

	if len(args) == 0 {
		return fmt.Errorf("no directory specified. Use --serve to run the host bridge, --list-terminals to see supported terminals, or pass a directory to open")
	}

	return openAll(st, args)
}

// openAll resolves the configuration once and opens a terminal for every uri.
func openAll(st *settings.Store, uris []string) error {
	app := launcher.NewApp(st, nil)
	app.Start()
	defer app.Stop()

	for _, uri := range uris {
		var err error
		app.Do(func() { err = app.OpenURI(uri) })
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", uri, err)
		}
	}
	return nil
}

// printTerminals lists the registry, as a capability table on a terminal and
// as bare identifiers when piped.
func printTerminals() {
	ids := terminal.Identifiers()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		for _, id := range ids {
			fmt.Println(id)
		}
		return
	}

	width := len("TERMINAL")
	for _, id := range ids {
		if len(id) > width {
			width = len(id)
		}
	}

	fmt.Printf("%-*s  %-7s  %-4s  %-7s  %s\n", width, "TERMINAL", "WORKDIR", "TABS", "FLATPAK", "NAME")
	for _, id := range ids {
		spec, _ := terminal.Lookup(id)
		fmt.Printf("%-*s  %-7s  %-4s  %-7s  %s\n",
			width, id,
			capability(spec.SupportsWorkdir()),
			capability(spec.SupportsTabs()),
			capability(spec.SupportsFlatpak()),
			spec.DisplayName)
	}
}

func capability(supported bool) string {
	if supported {
		return "yes"
	}
	return "-"
}

// runBridge runs the host bridge until interrupted: the settings watcher, the
// Unix socket for the file-manager shim and, with --api, the control API.
func runBridge(st *settings.Store) error {
	app := launcher.NewApp(st, nil)
	app.Start()
	defer app.Stop()

	watcher, err := app.WatchSettings()
	if err != nil {
		fmt.Printf("Warning: settings watcher disabled: %v\n", err)
	} else {
		defer watcher.Close()
	}

	host := bridge.NewServer(socketPath, app, menu.NewProvider(app, locale.LoadDefault()))
	if hostAPI > 0 {
		host.SetDefaultHostAPI(hostAPI)
	}
	if err := host.Start(); err != nil {
		return fmt.Errorf("failed to start host bridge: %w", err)
	}
	defer host.Stop()

	fmt.Printf("Host bridge listening on %s\n", host.SocketPath())
	fmt.Printf("Settings file: %s\n", st.Path())

	if apiEnabled {
		if apiPassword != "" {
			fmt.Printf("Basic auth enabled with username: admin\n")
		}
		if err := api.NewServer(app, apiPassword).Start(apiAddr); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	fmt.Println("\nShutting down host bridge...")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
