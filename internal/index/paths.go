package index

import (
	"os"
	"path/filepath"
	"strings"
)

// expandHome replaces a leading ~ with the home directory
func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
