package launcher

import "strings"

// Quote escapes s for use as a single word in a POSIX shell command line.
// Anything outside [A-Za-z0-9_@%+=:,./-] forces single-quote wrapping, with
// embedded single quotes spliced out as '"'"'. The empty string quotes to ''.
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsFunc(s, unsafeShellRune) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}

func unsafeShellRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	}
	switch r {
	case '_', '@', '%', '+', '=', ':', ',', '.', '/', '-':
		return false
	}
	return true
}
