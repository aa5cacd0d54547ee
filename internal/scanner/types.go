package scanner

import (
	"time"
)

// BundleSuffix is the filename suffix that marks an installable bundle.
const BundleSuffix = ".app"

// App is one discoverable application bundle.
// Path is the stable identity; Name is the filename with the bundle
// suffix stripped.
type App struct {
	Name    string
	Path    string
	ModTime time.Time
}

// PathSet builds a set of paths from a slice of apps.
func PathSet(apps []App) map[string]struct{} {
	set := make(map[string]struct{}, len(apps))
	for _, a := range apps {
		set[a.Path] = struct{}{}
	}
	return set
}
