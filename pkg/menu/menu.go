// Package menu builds the context-menu entries the file manager shows and
// routes their activation into a terminal launch.
package menu

import (
	"github.com/openanyterminal/linux/pkg/launcher"
	"github.com/openanyterminal/linux/pkg/locale"
)

// Stable entry identifiers, part of the host-facing surface.
const (
	FileItemName             = "OpenTerminal::open_file_item"
	RemoteFileItemName       = "OpenTerminal::open_remote_item"
	BackgroundItemName       = "OpenTerminal::open_bg_file_item"
	BackgroundRemoteItemName = "OpenTerminal::open_bg_remote_item"
)

// FileInfo is the slice of the host's file object the menu logic needs.
type FileInfo struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	IsDirectory bool   `json:"is_directory"`
}

// Item is one context-menu entry. URI is the activation target.
type Item struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Tip   string `json:"tip"`
	URI   string `json:"uri"`
}

// Provider produces menu entries naming the active terminal and launches it
// on activation. All methods read the live configuration, so callers
// serialize them through the application loop.
type Provider struct {
	app *launcher.App
	tr  *locale.Translator
}

// NewProvider returns a provider rendering labels through tr.
func NewProvider(app *launcher.App, tr *locale.Translator) *Provider {
	return &Provider{app: app, tr: tr}
}

// FileItems returns the entries for a file selection. Only a single selected
// directory gets an entry.
func (p *Provider) FileItems(selection []FileInfo) []Item {
	if len(selection) != 1 {
		return nil
	}
	file := selection[0]
	if !file.IsDirectory {
		return nil
	}

	name := p.app.Current().Spec.DisplayName
	if remoteURI(file.URI) {
		return []Item{{
			Name:  RemoteFileItemName,
			Label: p.tr.Sprintf("Open Remote %s", name),
			Tip:   p.tr.Sprintf("Open Remote %s In %s", name, file.URI),
			URI:   file.URI,
		}}
	}
	return []Item{{
		Name:  FileItemName,
		Label: p.tr.Sprintf("Open In %s", name),
		Tip:   p.tr.Sprintf("Open %s In %s", name, file.Name),
		URI:   file.URI,
	}}
}

// BackgroundItems returns the entry for the folder behind the current view.
func (p *Provider) BackgroundItems(folder FileInfo) []Item {
	name := p.app.Current().Spec.DisplayName
	if remoteURI(folder.URI) {
		return []Item{{
			Name:  BackgroundRemoteItemName,
			Label: p.tr.Sprintf("Open Remote %s Here", name),
			Tip:   p.tr.Sprintf("Open Remote %s In This Directory", name),
			URI:   folder.URI,
		}}
	}
	return []Item{{
		Name:  BackgroundItemName,
		Label: p.tr.Sprintf("Open %s Here", name),
		Tip:   p.tr.Sprintf("Open %s In This Directory", name),
		URI:   folder.URI,
	}}
}

// Activate opens the configured terminal at the entry's URI.
func (p *Provider) Activate(uri string) error {
	return p.app.OpenURI(uri)
}

func remoteURI(uri string) bool {
	loc, err := launcher.ParseLocation(uri)
	if err != nil {
		return false
	}
	return loc.IsRemote()
}
