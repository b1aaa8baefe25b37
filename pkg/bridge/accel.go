package bridge

import (
	"fmt"
	"strings"
)

// Accel is a parsed keyboard accelerator, e.g. <Ctrl><Alt>t.
type Accel struct {
	Key       string   `json:"key"`
	Modifiers []string `json:"modifiers,omitempty"`
}

// String renders the accelerator back into its settings form.
func (a Accel) String() string {
	var b strings.Builder
	for _, mod := range a.Modifiers {
		// Accels can arrive decoded off the wire, so an empty modifier from
		// a bad peer is skipped rather than trusted.
		if mod == "" {
			continue
		}
		b.WriteString("<")
		// Settings files carry the modifiers capitalized.
		b.WriteString(strings.ToUpper(mod[:1]) + mod[1:])
		b.WriteString(">")
	}
	b.WriteString(a.Key)
	return b.String()
}

// ParseAccel parses the angle-bracket accelerator grammar used by the
// keybindings setting: zero or more <Modifier> prefixes followed by a key
// name. Modifier names are case-insensitive; Control and Primary are
// accepted as spellings of Ctrl.
func ParseAccel(s string) (Accel, error) {
	rest := s
	var mods []string
	for strings.HasPrefix(rest, "<") {
		end := strings.Index(rest, ">")
		if end < 0 {
			return Accel{}, fmt.Errorf("unterminated modifier in %q", s)
		}
		switch name := strings.ToLower(rest[1:end]); name {
		case "ctrl", "control", "primary":
			mods = append(mods, "ctrl")
		case "alt":
			mods = append(mods, "alt")
		case "shift":
			mods = append(mods, "shift")
		case "super":
			mods = append(mods, "super")
		case "meta":
			mods = append(mods, "meta")
		default:
			return Accel{}, fmt.Errorf("unknown modifier %q in %q", rest[1:end], s)
		}
		rest = rest[end+1:]
	}
	if rest == "" {
		return Accel{}, fmt.Errorf("missing key in %q", s)
	}
	if strings.ContainsAny(rest, "<>") {
		return Accel{}, fmt.Errorf("malformed key %q in %q", rest, s)
	}
	return Accel{Key: rest, Modifiers: mods}, nil
}
