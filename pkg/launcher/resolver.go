package launcher

import (
	"fmt"
	"strings"

	"github.com/openanyterminal/linux/pkg/osrelease"
	"github.com/openanyterminal/linux/pkg/settings"
	"github.com/openanyterminal/linux/pkg/terminal"
)

// Resolved is the launch configuration in effect: the active emulator, the
// spawn prefix derived from the flatpak mode, and the tab preference after
// checking the emulator actually supports tabs.
type Resolved struct {
	Terminal      string
	Spec          terminal.Spec
	CommandPrefix []string
	PreferNewTab  bool
	FlatpakMode   string
	Status        string
}

// Resolver turns settings values into the active Resolved configuration. It
// holds on to the last good configuration, so a broken settings write keeps
// terminals opening with the previous values instead of taking the host down.
type Resolver struct {
	current  *Resolved
	distroID func() string
}

// NewResolver returns a resolver seeded with the schema defaults. distroID
// overrides the distribution probe; nil uses the system files.
func NewResolver(distroID func() string) *Resolver {
	r := &Resolver{distroID: distroID}
	if r.distroID == nil {
		r.distroID = osrelease.ID
	}

	defaults := settings.Defaults()
	spec, _ := terminal.Lookup(defaults.Terminal)
	r.current = r.build(defaults.Terminal, spec, defaults.NewTab, defaults.Flatpak)
	return r
}

// Apply resolves an identifier and the tab/flatpak preferences into the
// active configuration and prints the operator-facing status line. An unknown
// identifier prints a diagnostic and keeps the previous configuration; no
// input makes Apply fail.
func (r *Resolver) Apply(id string, preferNewTab bool, flatpakMode string) *Resolved {
	spec, ok := terminal.Lookup(id)
	if !ok {
		fmt.Printf("open-any-terminal: unknown terminal %q\n", id)
		return r.current
	}

	res := r.build(id, spec, preferNewTab, flatpakMode)
	r.current = res
	fmt.Println(res.Status)
	return res
}

// Resolve reads the schema keys from the store and applies them. Called on
// every settings-change notification.
func (r *Resolver) Resolve(st *settings.Store) *Resolved {
	return r.Apply(st.GetString(settings.KeyTerminal), st.GetBoolean(settings.KeyNewTab), st.FlatpakMode())
}

// Current returns the configuration in effect.
func (r *Resolver) Current() *Resolved {
	return r.current
}

func (r *Resolver) build(id string, spec terminal.Spec, preferNewTab bool, flatpakMode string) *Resolved {
	if flatpakMode != "system" && flatpakMode != "user" {
		flatpakMode = "off"
	}

	res := &Resolved{
		Terminal:    id,
		Spec:        spec,
		FlatpakMode: flatpakMode,
	}

	tabText := "opening a new window"
	if preferNewTab && spec.SupportsTabs() {
		res.PreferNewTab = true
		tabText = "opening in a new tab"
	} else if preferNewTab {
		tabText += " (terminal does not support tabs)"
	}

	var flatpakText string
	if flatpakMode != "off" && spec.SupportsFlatpak() {
		res.CommandPrefix = []string{"flatpak", "run", "--" + flatpakMode, spec.FlatpakID}
		flatpakText = "with flatpak as " + flatpakMode
	} else {
		binary := id
		if id == "blackbox" && r.distroID() == "fedora" {
			// fedora packages the binary under a different name
			binary = "blackbox-terminal"
		}
		res.CommandPrefix = []string{binary}
		res.FlatpakMode = "off"
	}

	parts := []string{fmt.Sprintf("terminal is set to %q", id), tabText}
	if flatpakText != "" {
		parts = append(parts, flatpakText)
	}
	res.Status = "open-any-terminal: " + strings.Join(parts, " ")
	return res
}
