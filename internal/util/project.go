package util

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
)

var (
	projectRootDir     string
	projectRootDirOnce sync.Once
)

// GetProjectRootDir returns the path as string to the project_root.
// It walks upwards from the working directory until it finds the go.mod file
// or falls back to PROJECT_ROOT_DIR if set.
func GetProjectRootDir() string {
	projectRootDirOnce.Do(func() {
		if val, ok := os.LookupEnv("PROJECT_ROOT_DIR"); ok {
			projectRootDir = val
			return
		}

		dir, err := os.Getwd()
		if err != nil {
			log.Warn().Err(err).Msg("Failed to get working directory, falling back to /app")
			projectRootDir = "/app"
			return
		}

		for {
			if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
				projectRootDir = dir
				return
			}

			parent := filepath.Dir(dir)
			if parent == dir {
				projectRootDir = "/app"
				return
			}
			dir = parent
		}
	})

	return projectRootDir
}

// ProcessArgsContain reports whether any of the process arguments starts with arg.
func ProcessArgsContain(arg string) bool {
	for _, a := range os.Args {
		if len(a) >= len(arg) && a[:len(arg)] == arg {
			return true
		}
	}

	return false
}
