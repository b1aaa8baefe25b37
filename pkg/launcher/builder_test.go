package launcher

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/openanyterminal/linux/pkg/terminal"
)

func resolve(t *testing.T, distro func() string, id string, newTab bool, flatpak string) *Resolved {
	t.Helper()
	res := NewResolver(distro).Apply(id, newTab, flatpak)
	if res.Terminal != id {
		t.Fatalf("resolve(%q) failed", id)
	}
	return res
}

func mustParse(t *testing.T, uri string) Location {
	t.Helper()
	loc, err := ParseLocation(uri)
	if err != nil {
		t.Fatalf("ParseLocation(%q) failed: %v", uri, err)
	}
	return loc
}

func TestBuildArgvLocal(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *Resolved
		uri      string
		wantArgv []string
		wantDir  string
	}{
		{
			name:     "konsole new tab",
			cfg:      resolve(t, onDebian, "konsole", true, "off"),
			uri:      "file:///home/alice/projects",
			wantArgv: []string{"konsole", "--new-tab"},
			wantDir:  "/home/alice/projects",
		},
		{
			name:     "gnome-terminal plain window",
			cfg:      resolve(t, onDebian, "gnome-terminal", false, "off"),
			uri:      "file:///var/log",
			wantArgv: []string{"gnome-terminal"},
			wantDir:  "/var/log",
		},
		{
			name:     "workdir flag and cwd together",
			cfg:      resolve(t, onDebian, "wezterm", false, "off"),
			uri:      "file:///srv/www",
			wantArgv: []string{"wezterm", "start", "--cwd", "/srv/www"},
			wantDir:  "/srv/www",
		},
		{
			name:     "guake multi-word workdir args",
			cfg:      resolve(t, onDebian, "guake", false, "off"),
			uri:      "file:///opt",
			wantArgv: []string{"guake", "--show", "--new-tab", "/opt"},
			wantDir:  "/opt",
		},
		{
			name:     "window args when tabs not requested",
			cfg:      resolve(t, onDebian, "prompt", false, "off"),
			uri:      "file:///etc",
			wantArgv: []string{"prompt", "--new-window"},
			wantDir:  "/etc",
		},
		{
			name:     "tab args win over window args",
			cfg:      resolve(t, onDebian, "prompt", true, "off"),
			uri:      "file:///etc",
			wantArgv: []string{"prompt", "--tab"},
			wantDir:  "/etc",
		},
		{
			name:     "empty path keeps tab args and skips workdir",
			cfg:      resolve(t, onDebian, "guake", false, "off"),
			uri:      "file://",
			wantArgv: []string{"guake"},
			wantDir:  "",
		},
		{
			name:     "empty path still adds tab args",
			cfg:      resolve(t, onDebian, "kgx", true, "off"),
			uri:      "file://",
			wantArgv: []string{"kgx", "--tab"},
			wantDir:  "",
		},
		{
			name:     "decoded path reaches argv and cwd",
			cfg:      resolve(t, onDebian, "wezterm", false, "off"),
			uri:      "file:///home/alice/my%20stuff",
			wantArgv: []string{"wezterm", "start", "--cwd", "/home/alice/my stuff"},
			wantDir:  "/home/alice/my stuff",
		},
		{
			name:     "non-ascii encoded path round trips",
			cfg:      resolve(t, onDebian, "wezterm", false, "off"),
			uri:      "file:///home/alice/b%C3%BCro%20docs",
			wantArgv: []string{"wezterm", "start", "--cwd", "/home/alice/büro docs"},
			wantDir:  "/home/alice/büro docs",
		},
		{
			name:     "flatpak prefix local",
			cfg:      resolve(t, onDebian, "tilix", false, "user"),
			uri:      "file:///home/bob",
			wantArgv: []string{"flatpak", "run", "--user", "com.gexperts.Tilix"},
			wantDir:  "/home/bob",
		},
		{
			name:     "fedora blackbox binary with workdir",
			cfg:      resolve(t, onFedora, "blackbox", false, "off"),
			uri:      "file:///home/carol",
			wantArgv: []string{"blackbox-terminal", "--working-directory", "/home/carol"},
			wantDir:  "/home/carol",
		},
		{
			name:     "bare path treated as local",
			cfg:      resolve(t, onDebian, "xterm", false, "off"),
			uri:      "/tmp",
			wantArgv: []string{"xterm"},
			wantDir:  "/tmp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			argv, dir := BuildArgv(mustParse(t, tt.uri), tt.cfg)
			if !reflect.DeepEqual(argv, tt.wantArgv) {
				t.Errorf("argv = %v, want %v", argv, tt.wantArgv)
			}
			if dir != tt.wantDir {
				t.Errorf("dir = %q, want %q", dir, tt.wantDir)
			}
		})
	}
}

func TestBuildArgvRemote(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *Resolved
		uri      string
		wantArgv []string
	}{
		{
			name: "user host and port",
			cfg:  resolve(t, onDebian, "xterm", false, "off"),
			uri:  "sftp://bob@example.com:2222/srv/data",
			wantArgv: []string{
				"xterm", "-e", "ssh", "-t", "bob@example.com", "-p", "2222",
				"cd", "/srv/data", ";", "exec", "$SHELL",
			},
		},
		{
			name: "host only",
			cfg:  resolve(t, onDebian, "xterm", false, "off"),
			uri:  "ftp://example.com/pub",
			wantArgv: []string{
				"xterm", "-e", "ssh", "-t", "example.com",
				"cd", "/pub", ";", "exec", "$SHELL",
			},
		},
		{
			name: "path with spaces is one quoted word",
			cfg:  resolve(t, onDebian, "xterm", false, "off"),
			uri:  "sftp://example.com/My%20Files",
			wantArgv: []string{
				"xterm", "-e", "ssh", "-t", "example.com",
				"cd", "'/My Files'", ";", "exec", "$SHELL",
			},
		},
		{
			name: "quote and space stay one shell word",
			cfg:  resolve(t, onDebian, "xterm", false, "off"),
			uri:  "sftp://example.com/srv/bob%27s%20files",
			wantArgv: []string{
				"xterm", "-e", "ssh", "-t", "example.com",
				"cd", `'/srv/bob'"'"'s files'`, ";", "exec", "$SHELL",
			},
		},
		{
			name: "tab preference does not leak into remote argv",
			cfg:  resolve(t, onDebian, "konsole", true, "off"),
			uri:  "sftp://example.com/srv",
			wantArgv: []string{
				"konsole", "-e", "ssh", "-t", "example.com",
				"cd", "/srv", ";", "exec", "$SHELL",
			},
		},
		{
			name: "flatpak prefix with command args",
			cfg:  resolve(t, onDebian, "tilix", false, "user"),
			uri:  "sftp://example.com/srv",
			wantArgv: []string{
				"flatpak", "run", "--user", "com.gexperts.Tilix", "-e",
				"ssh", "-t", "example.com",
				"cd", "/srv", ";", "exec", "$SHELL",
			},
		},
		{
			name: "tabby run command args",
			cfg:  resolve(t, onDebian, "tabby", false, "off"),
			uri:  "sftp://example.com/srv",
			wantArgv: []string{
				"tabby", "run", "ssh", "-t", "example.com",
				"cd", "/srv", ";", "exec", "$SHELL",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			argv, dir := BuildArgv(mustParse(t, tt.uri), tt.cfg)
			if !reflect.DeepEqual(argv, tt.wantArgv) {
				t.Errorf("argv = %v, want %v", argv, tt.wantArgv)
			}
			if dir != "" {
				t.Errorf("dir = %q, want empty for remote", dir)
			}
		})
	}
}

func TestLaunch(t *testing.T) {
	spec, _ := terminal.Lookup("xterm")

	t.Run("spawns detached", func(t *testing.T) {
		cfg := &Resolved{Terminal: "xterm", Spec: spec, CommandPrefix: []string{"true"}}
		loc := Location{Path: t.TempDir()}
		if err := Launch(loc, cfg); err != nil {
			t.Fatalf("Launch failed: %v", err)
		}
	})

	t.Run("missing binary surfaces as spawn error", func(t *testing.T) {
		cfg := &Resolved{Terminal: "xterm", Spec: spec, CommandPrefix: []string{"/definitely/not/a/binary"}}
		if err := Launch(Location{Path: t.TempDir()}, cfg); err == nil {
			t.Fatal("Launch succeeded with a missing binary")
		}
	})

	t.Run("missing directory surfaces as spawn error", func(t *testing.T) {
		cfg := &Resolved{Terminal: "xterm", Spec: spec, CommandPrefix: []string{"true"}}
		loc := Location{Path: filepath.Join(t.TempDir(), "does-not-exist")}
		if err := Launch(loc, cfg); err == nil {
			t.Fatal("Launch succeeded with a missing working directory")
		}
	})
}
