package bridge

import (
	"log"

	"github.com/openanyterminal/linux/pkg/launcher"
	"github.com/openanyterminal/linux/pkg/menu"
	"github.com/openanyterminal/linux/pkg/settings"
)

// adapter is the per-connection view of the extension surface. The handshake
// selects the implementation matching the host's API generation.
type adapter interface {
	Hello() Response
	FileItems(selection []menu.FileInfo) []menu.Item
	BackgroundItems(folder menu.FileInfo) []menu.Item
	Activate(uri string) error
	Shortcut() (Accel, bool)
}

// menuAdapter serves hosts whose API binds keyboard shortcuts itself; the
// bridge only provides menu entries and activation.
type menuAdapter struct {
	app      *launcher.App
	provider *menu.Provider
}

func (a *menuAdapter) Hello() Response {
	return Response{OK: true, BridgeVersion: BridgeVersion}
}

func (a *menuAdapter) FileItems(selection []menu.FileInfo) []menu.Item {
	return a.provider.FileItems(selection)
}

func (a *menuAdapter) BackgroundItems(folder menu.FileInfo) []menu.Item {
	return a.provider.BackgroundItems(folder)
}

func (a *menuAdapter) Activate(uri string) error {
	return a.provider.Activate(uri)
}

func (a *menuAdapter) Shortcut() (Accel, bool) {
	return Accel{}, false
}

// shortcutAdapter serves older hosts that expect the extension to hand them
// the keyboard shortcut for binding per window. The accelerator comes from
// the keybindings setting and is re-read on every request, so a settings
// change takes effect without a reconnect.
type shortcutAdapter struct {
	menuAdapter
}

func (a *shortcutAdapter) Hello() Response {
	resp := a.menuAdapter.Hello()
	if accel, ok := a.Shortcut(); ok {
		resp.Accel = &accel
	}
	return resp
}

func (a *shortcutAdapter) Shortcut() (Accel, bool) {
	raw := a.app.Settings.GetString(settings.KeyKeybindings)
	accel, err := ParseAccel(raw)
	if err != nil {
		log.Printf("[ERROR] Bridge: invalid keybindings %q: %v", raw, err)
		return Accel{}, false
	}
	return accel, true
}
