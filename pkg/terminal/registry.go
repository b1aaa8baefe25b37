package terminal

import "sort"

// Spec describes one terminal emulator's command-line dialect: how to ask it
// for a starting directory, a new tab or a new window, and which flags hand it
// a command to execute. A nil argument list means the emulator has no flag for
// that feature.
type Spec struct {
	DisplayName   string
	WorkdirArgs   []string
	NewTabArgs    []string
	NewWindowArgs []string
	CommandArgs   []string
	FlatpakID     string
}

// SupportsTabs reports whether the emulator can open a new tab on request.
func (s Spec) SupportsTabs() bool {
	return len(s.NewTabArgs) > 0
}

// SupportsWorkdir reports whether the emulator accepts an explicit
// starting-directory flag.
func (s Spec) SupportsWorkdir() bool {
	return len(s.WorkdirArgs) > 0
}

// SupportsFlatpak reports whether the emulator ships as a flatpak package.
func (s Spec) SupportsFlatpak() bool {
	return s.FlatpakID != ""
}

func (s Spec) clone() Spec {
	s.WorkdirArgs = cloneArgs(s.WorkdirArgs)
	s.NewTabArgs = cloneArgs(s.NewTabArgs)
	s.NewWindowArgs = cloneArgs(s.NewWindowArgs)
	s.CommandArgs = cloneArgs(s.CommandArgs)
	return s
}

func cloneArgs(args []string) []string {
	if args == nil {
		return nil
	}
	out := make([]string, len(args))
	copy(out, args)
	return out
}

// registry is the full set of supported emulators, keyed by the identifier the
// settings schema uses. Entries whose CommandArgs is nil get the conventional
// "-e" at init time. The table is never modified after that; adding support
// for a new emulator is a data-only change here.
var registry = map[string]Spec{
	"alacritty":       {DisplayName: "Alacritty"},
	"blackbox":        {DisplayName: "Black Box", WorkdirArgs: []string{"--working-directory"}, CommandArgs: []string{"-c"}, FlatpakID: "com.raggesilver.BlackBox"},
	"cool-retro-term": {DisplayName: "cool-retro-term", WorkdirArgs: []string{"--workdir"}},
	"deepin-terminal": {DisplayName: "Deepin Terminal"},
	"foot":            {DisplayName: "Foot"},
	"footclient":      {DisplayName: "FootClient"},
	"gnome-terminal":  {DisplayName: "Terminal", NewTabArgs: []string{"--tab"}},
	"guake":           {DisplayName: "Guake", WorkdirArgs: []string{"--show", "--new-tab"}},
	"hyper":           {DisplayName: "Hyper"},
	"kermit":          {DisplayName: "Kermit"},
	"kgx":             {DisplayName: "Console", NewTabArgs: []string{"--tab"}},
	"kitty":           {DisplayName: "kitty"},
	"konsole":         {DisplayName: "Konsole", NewTabArgs: []string{"--new-tab"}},
	"mate-terminal":   {DisplayName: "Mate Terminal", NewTabArgs: []string{"--tab"}},
	"mlterm":          {DisplayName: "Mlterm"},
	"prompt":          {DisplayName: "Prompt", CommandArgs: []string{"-x"}, NewTabArgs: []string{"--tab"}, NewWindowArgs: []string{"--new-window"}, FlatpakID: "org.gnome.Prompt"},
	"qterminal":       {DisplayName: "QTerminal"},
	"rio":             {DisplayName: "Rio"},
	"sakura":          {DisplayName: "Sakura"},
	"st":              {DisplayName: "Simple Terminal"},
	"tabby":           {DisplayName: "Tabby", CommandArgs: []string{"run"}, WorkdirArgs: []string{"open"}},
	"terminator":      {DisplayName: "Terminator", NewTabArgs: []string{"--new-tab"}},
	"terminology":     {DisplayName: "Terminology"},
	"terminus":        {DisplayName: "Terminus"},
	"termite":         {DisplayName: "Termite"},
	"tilix":           {DisplayName: "Tilix", FlatpakID: "com.gexperts.Tilix"},
	"urxvt":           {DisplayName: "rxvt-unicode"},
	"urxvtc":          {DisplayName: "urxvtc"},
	"uxterm":          {DisplayName: "UXTerm"},
	"warp":            {DisplayName: "warp"},
	"wezterm":         {DisplayName: "Wez's Terminal Emulator", WorkdirArgs: []string{"start", "--cwd"}, FlatpakID: "org.wezfurlong.wezterm"},
	"xfce4-terminal":  {DisplayName: "Xfce Terminal", NewTabArgs: []string{"--tab"}},
	"xterm":           {DisplayName: "XTerm"},
}

func init() {
	for id, spec := range registry {
		if spec.CommandArgs == nil {
			spec.CommandArgs = []string{"-e"}
			registry[id] = spec
		}
	}
}

// Lookup returns the dialect for the given identifier. The returned Spec is a
// copy; callers cannot alter the registry through it.
func Lookup(id string) (Spec, bool) {
	spec, ok := registry[id]
	if !ok {
		return Spec{}, false
	}
	return spec.clone(), true
}

// Known reports whether an identifier names a supported emulator.
func Known(id string) bool {
	_, ok := registry[id]
	return ok
}

// Identifiers returns all supported identifiers in sorted order.
func Identifiers() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
