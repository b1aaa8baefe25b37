// Package osrelease reads the distribution identification files described by
// the freedesktop os-release format.
package osrelease

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"sync"
)

// Unknown is the sentinel distribution id used when no os-release file can be
// read or the file carries no ID field.
const Unknown = "unknown"

// DefaultPaths is the probe order for distribution files. The first path that
// opens wins; the second is only consulted when the first does not exist.
var DefaultPaths = []string{"/etc/os-release", "/usr/lib/os-release"}

var assignment = regexp.MustCompile(`^([A-Z][A-Z_0-9]+)=(.*)$`)

// Parse reads KEY=value assignments from r. Blank lines and comments are
// skipped, quoted values are unquoted, and the first line that is neither is
// an error. Duplicate keys keep the last value.
func Parse(r io.Reader) (map[string]string, error) {
	fields := make(map[string]string)
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		key, value, skip, err := parseLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		if skip {
			continue
		}
		fields[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return fields, nil
}

func parseLine(line string) (key, value string, skip bool, err error) {
	line = strings.TrimRight(line, " \t\r")
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", true, nil
	}
	m := assignment.FindStringSubmatch(line)
	if m == nil {
		return "", "", false, fmt.Errorf("bad line %q", line)
	}
	value, err = unquote(m[2])
	if err != nil {
		return "", "", false, err
	}
	return m[1], value, false, nil
}

// unquote strips a matching pair of single or double quotes and resolves
// backslash escapes inside them. Unquoted values pass through untouched.
func unquote(v string) (string, error) {
	if v == "" || (v[0] != '"' && v[0] != '\'') {
		return v, nil
	}
	q := v[0]
	if len(v) < 2 || v[len(v)-1] != q {
		return "", fmt.Errorf("unterminated quote in %q", v)
	}
	inner := v[1 : len(v)-1]
	var b strings.Builder
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		switch {
		case c == '\\' && i+1 < len(inner):
			i++
			b.WriteByte(inner[i])
		case c == q:
			return "", fmt.Errorf("stray quote in %q", v)
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}

// Prober resolves the distribution id once and caches the answer for the
// process lifetime. The zero value probes the default paths.
type Prober struct {
	// Paths overrides the files consulted, in order. Empty means DefaultPaths.
	Paths []string

	once sync.Once
	id   string
}

// ID returns the distribution's ID field from the first readable os-release
// file, or Unknown when none can be read, the file is malformed, or it lacks
// an ID assignment. The result never changes while the process runs.
func (p *Prober) ID() string {
	p.once.Do(func() { p.id = p.probe() })
	return p.id
}

func (p *Prober) probe() string {
	paths := p.Paths
	if len(paths) == 0 {
		paths = DefaultPaths
	}
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Unknown
		}
		id := scanID(f)
		f.Close()
		return id
	}
	return Unknown
}

// scanID returns the value of the first ID assignment, stopping as soon as it
// is found. A malformed line before it poisons the read.
func scanID(r io.Reader) string {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		key, value, skip, err := parseLine(scanner.Text())
		if err != nil {
			return Unknown
		}
		if skip {
			continue
		}
		if key == "ID" {
			return value
		}
	}
	return Unknown
}

var defaultProber Prober

// ID is the package-level shorthand for probing the default paths.
func ID() string {
	return defaultProber.ID()
}
