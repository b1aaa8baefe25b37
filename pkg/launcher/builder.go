package launcher

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"syscall"
)

// BuildArgv renders the argv for opening the configured terminal at loc,
// along with the working directory for the child process ("" means inherit).
func BuildArgv(loc Location, cfg *Resolved) ([]string, string) {
	argv := append([]string{}, cfg.CommandPrefix...)

	if loc.IsRemote() {
		argv = append(argv, cfg.Spec.CommandArgs...)
		argv = append(argv, "ssh", "-t")
		if loc.Username != "" {
			argv = append(argv, loc.Username+"@"+loc.Host)
		} else {
			argv = append(argv, loc.Host)
		}
		if loc.Port != "" {
			argv = append(argv, "-p", loc.Port)
		}
		// The path crosses the remote shell once, so it travels as one
		// quoted literal word.
		argv = append(argv, "cd", Quote(loc.Path), ";", "exec", "$SHELL")
		return argv, ""
	}

	if cfg.PreferNewTab && cfg.Spec.SupportsTabs() {
		argv = append(argv, cfg.Spec.NewTabArgs...)
	} else if len(cfg.Spec.NewWindowArgs) > 0 {
		argv = append(argv, cfg.Spec.NewWindowArgs...)
	}

	// Some emulators want the directory as a flag, all of them inherit it as
	// the process working directory. Both are set when available.
	if loc.Path != "" && cfg.Spec.SupportsWorkdir() {
		argv = append(argv, cfg.Spec.WorkdirArgs...)
		argv = append(argv, loc.Path)
	}

	return argv, loc.Path
}

// Launch spawns the terminal for loc in its own session and returns without
// waiting for it. The target path is not validated up front; a missing
// directory or binary surfaces as a spawn error, which callers at the host
// boundary only log.
func Launch(loc Location, cfg *Resolved) error {
	argv, dir := BuildArgv(loc, cfg)

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Env = os.Environ()
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	debugLog("[DEBUG] Launcher: spawning %v (dir %q)", argv, dir)
	if err := cmd.Start(); err != nil {
		log.Printf("[ERROR] Launcher: failed to spawn %s: %v", argv[0], err)
		return fmt.Errorf("failed to spawn terminal: %w", err)
	}

	// Reap the child if we stay alive that long; it runs in its own session
	// and is not tied to our lifetime.
	go cmd.Wait()

	return nil
}
