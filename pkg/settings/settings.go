package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Schema keys. Accessors take these names so callers read the store the same
// way the host settings interface is keyed.
const (
	KeyTerminal    = "terminal"
	KeyNewTab      = "new-tab"
	KeyFlatpak     = "flatpak"
	KeyKeybindings = "keybindings"
)

// FlatpakModes is the value list of the flatpak enum, in schema order.
var FlatpakModes = []string{"off", "system", "user"}

// Settings is the persisted settings document.
type Settings struct {
	Terminal    string `yaml:"terminal" json:"terminal"`
	NewTab      bool   `yaml:"new-tab" json:"newTab" split_words:"true"`
	Flatpak     string `yaml:"flatpak" json:"flatpak"`
	Keybindings string `yaml:"keybindings" json:"keybindings"`
}

// Defaults returns the schema defaults.
func Defaults() Settings {
	return Settings{
		Terminal:    "gnome-terminal",
		NewTab:      false,
		Flatpak:     "off",
		Keybindings: "<Ctrl><Alt>t",
	}
}

// Store holds the live settings values and remembers the file they came from.
type Store struct {
	Values Settings

	path string
}

// DefaultPath returns the conventional settings file location.
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".open-any-terminal", "settings.yaml")
}

// Load reads the settings file, creating it with defaults if it does not
// exist. Load never fails: an unreadable or malformed file falls back to
// defaults with a warning, so a broken settings document cannot take the
// whole extension down with it.
func Load(path string) *Store {
	st := &Store{Values: Defaults(), path: path}

	if path == "" {
		return st
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		fmt.Printf("Warning: failed to create settings directory: %v\n", err)
		return st
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Printf("Warning: failed to read settings file: %v\n", err)
		}
		if err := st.Save(path); err != nil {
			fmt.Printf("Warning: failed to save default settings: %v\n", err)
		}
		return st
	}

	if err := yaml.Unmarshal(data, &st.Values); err != nil {
		fmt.Printf("Warning: failed to parse settings file: %v\n", err)
		st.Values = Defaults()
		return st
	}

	return st
}

// Path returns the file the store was loaded from.
func (s *Store) Path() string {
	return s.path
}

// Reload re-reads the settings file in place. Used by change-notification
// consumers after the watcher fires.
func (s *Store) Reload() error {
	if s.path == "" {
		return nil
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("failed to read settings file: %w", err)
	}
	values := Defaults()
	if err := yaml.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("failed to parse settings file: %w", err)
	}
	s.Values = values
	return nil
}

// Save writes the settings document to file.
func (s *Store) Save(path string) error {
	data, err := yaml.Marshal(&s.Values)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetString returns the string value for a schema key, or "" for a key that
// is not a string.
func (s *Store) GetString(key string) string {
	switch key {
	case KeyTerminal:
		return s.Values.Terminal
	case KeyFlatpak:
		return s.Values.Flatpak
	case KeyKeybindings:
		return s.Values.Keybindings
	}
	return ""
}

// GetBoolean returns the boolean value for a schema key, or false for a key
// that is not a boolean.
func (s *Store) GetBoolean(key string) bool {
	if key == KeyNewTab {
		return s.Values.NewTab
	}
	return false
}

// GetEnum returns the index of the key's value in its enum list. Unknown keys
// and values outside the list map to 0.
func (s *Store) GetEnum(key string) int {
	if key != KeyFlatpak {
		return 0
	}
	for i, mode := range FlatpakModes {
		if s.Values.Flatpak == mode {
			return i
		}
	}
	return 0
}

// FlatpakMode returns the flatpak enum value normalized to its list, so a
// malformed document reads as "off".
func (s *Store) FlatpakMode() string {
	return FlatpakModes[s.GetEnum(KeyFlatpak)]
}

// MergeFlags merges command line flags into the settings
func (s *Store) MergeFlags(flags *pflag.FlagSet) {
	// Only merge flags that were actually set by the user
	if flags.Changed("terminal") {
		if val, err := flags.GetString("terminal"); err == nil && val != "" {
			s.Values.Terminal = val
		}
	}

	if flags.Changed("new-tab") {
		if val, err := flags.GetBool("new-tab"); err == nil {
			s.Values.NewTab = val
		}
	}

	if flags.Changed("flatpak") {
		if val, err := flags.GetString("flatpak"); err == nil && val != "" {
			s.Values.Flatpak = val
		}
	}

	if flags.Changed("keybindings") {
		if val, err := flags.GetString("keybindings"); err == nil && val != "" {
			s.Values.Keybindings = val
		}
	}
}

// MergeEnv merges OAT_* environment variables into the settings.
func (s *Store) MergeEnv() error {
	if err := envconfig.Process("oat", &s.Values); err != nil {
		return fmt.Errorf("failed to process environment overrides: %w", err)
	}
	return nil
}

// Print displays the current settings
func (s *Store) Print() {
	fmt.Println("open-any-terminal settings:")
	fmt.Printf("  File: %s\n", s.path)
	fmt.Printf("  Terminal: %s\n", s.Values.Terminal)
	fmt.Printf("  New Tab: %t\n", s.Values.NewTab)
	fmt.Printf("  Flatpak: %s\n", s.FlatpakMode())
	fmt.Printf("  Keybindings: %s\n", s.Values.Keybindings)
}
