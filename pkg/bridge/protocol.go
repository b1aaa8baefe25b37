package bridge

import "github.com/openanyterminal/linux/pkg/menu"

const (
	// DefaultSocketPath is the default Unix socket path for the host bridge
	DefaultSocketPath = "/tmp/open-any-terminal.sock"

	// BridgeVersion is announced in the handshake reply so shims can detect
	// protocol drift.
	BridgeVersion = "1"
)

// Request types. A connection starts with one hello and then carries any
// number of further requests.
const (
	RequestHello           = "hello"
	RequestFileItems       = "file-items"
	RequestBackgroundItems = "background-items"
	RequestActivate        = "activate"
	RequestShortcut        = "shortcut"
)

// Request is one message from the file-manager shim.
type Request struct {
	Type       string          `json:"type"`
	APIVersion int             `json:"apiVersion,omitempty"`
	Files      []menu.FileInfo `json:"files,omitempty"`
	File       *menu.FileInfo  `json:"file,omitempty"`
	Name       string          `json:"name,omitempty"`
	URI        string          `json:"uri,omitempty"`
}

// Response is the reply to one request. Errors travel in-band; the bridge
// never drops a connection over a bad request.
type Response struct {
	OK            bool        `json:"ok"`
	Error         string      `json:"error,omitempty"`
	BridgeVersion string      `json:"bridgeVersion,omitempty"`
	Items         []menu.Item `json:"items,omitempty"`
	Accel         *Accel      `json:"accel,omitempty"`
}
