package launcher

import (
	"fmt"
	"net/url"
	"strings"
)

// RemoteSchemes lists the URI schemes that open a remote shell over ssh
// instead of a local one.
var RemoteSchemes = []string{"ftp", "sftp"}

// Location is the parsed target of a launch request. It is constructed fresh
// per invocation and never persisted.
type Location struct {
	Scheme   string
	Username string
	Host     string
	Port     string
	Path     string
}

// ParseLocation parses a URI into a Location, percent-decoding the path. A
// bare filesystem path (no scheme) is taken literally as a local location.
func ParseLocation(uri string) (Location, error) {
	if !strings.Contains(uri, "://") {
		return Location{Path: uri}, nil
	}

	u, err := url.Parse(uri)
	if err != nil {
		return Location{}, fmt.Errorf("failed to parse uri %q: %w", uri, err)
	}

	loc := Location{
		Scheme: strings.ToLower(u.Scheme),
		Host:   u.Hostname(),
		Port:   u.Port(),
		Path:   u.Path,
	}
	if u.User != nil {
		loc.Username = u.User.Username()
	}
	return loc, nil
}

// IsRemote reports whether the location is opened through ssh.
func (l Location) IsRemote() bool {
	for _, scheme := range RemoteSchemes {
		if l.Scheme == scheme {
			return true
		}
	}
	return false
}
