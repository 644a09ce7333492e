package peakroc

import (
	"os/user"
	"path/filepath"
	"strings"
)

// ExpandHome expands ~ to its proper path, where appropriate. Paths that do not
// start with ~, and gs:// paths, are returned unchanged.
//
// Via https://stackoverflow.com/a/17617721/199475
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	usr, err := user.Current()
	if err != nil {
		return path
	}

	if path == "~" {
		// In case of "~", which won't be caught by the join below
		return usr.HomeDir
	}

	return filepath.Join(usr.HomeDir, path[2:])
}
