package launcher

import (
	"log"

	"github.com/openanyterminal/linux/pkg/settings"
)

// App ties the settings store and the resolver together and serializes every
// resolve and launch through one loop goroutine. Settings-change
// notifications and menu activations arrive from different goroutines; the
// loop keeps the mutable configuration single-threaded, so it needs no lock.
type App struct {
	Settings *settings.Store

	resolver    *Resolver
	events      chan func()
	stopChan    chan struct{}
	stoppedChan chan struct{}
}

// NewApp resolves the store's current values and returns the application
// context. distroID overrides the distribution probe; nil uses the system
// files.
func NewApp(st *settings.Store, distroID func() string) *App {
	app := &App{
		Settings:    st,
		resolver:    NewResolver(distroID),
		events:      make(chan func(), 16),
		stopChan:    make(chan struct{}),
		stoppedChan: make(chan struct{}),
	}
	app.resolver.Resolve(st)
	return app
}

// Start runs the serialization loop.
func (a *App) Start() {
	go a.loop()
}

// Stop drains the loop and returns once it has exited.
func (a *App) Stop() {
	close(a.stopChan)
	<-a.stoppedChan
}

// loop is the main event loop
func (a *App) loop() {
	defer close(a.stoppedChan)

	for {
		select {
		case fn := <-a.events:
			fn()
		case <-a.stopChan:
			return
		}
	}
}

// Do runs fn on the loop goroutine and returns when it has finished. After
// Stop it returns immediately without running fn.
func (a *App) Do(fn func()) {
	done := make(chan struct{})
	wrapped := func() {
		defer close(done)
		fn()
	}

	select {
	case a.events <- wrapped:
	case <-a.stopChan:
		return
	}

	select {
	case <-done:
	case <-a.stopChan:
	}
}

// Current returns the configuration in effect.
func (a *App) Current() *Resolved {
	return a.resolver.Current()
}

// Resolver exposes the resolver for surfaces that re-resolve directly.
func (a *App) Resolver() *Resolver {
	return a.resolver
}

// OnSettingsChanged reloads the settings file and re-resolves the
// configuration. Resolving is idempotent, so coalesced or duplicate
// notifications are harmless. A failed reload keeps the previous values.
func (a *App) OnSettingsChanged() {
	if err := a.Settings.Reload(); err != nil {
		log.Printf("[ERROR] App: failed to reload settings: %v", err)
		return
	}
	a.resolver.Resolve(a.Settings)
}

// OpenURI parses uri and launches the configured terminal there.
func (a *App) OpenURI(uri string) error {
	loc, err := ParseLocation(uri)
	if err != nil {
		return err
	}
	return Launch(loc, a.resolver.Current())
}

// WatchSettings subscribes to settings-file changes and funnels each
// notification through the loop.
func (a *App) WatchSettings() (*settings.Watcher, error) {
	return a.Settings.Watch(func() {
		a.Do(a.OnSettingsChanged)
	})
}
