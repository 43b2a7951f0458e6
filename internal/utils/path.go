package utils

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// PathResolver finds dictionary files relative to where the binary runs.
type PathResolver struct {
	executableDir string
	configDir     string
}

// NewPathResolver creates a resolver rooted at the running executable.
func NewPathResolver(configDir string) (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	// Resolve any symlinks to get the actual binary location
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	pr := &PathResolver{
		executableDir: filepath.Dir(execPath),
		configDir:     configDir,
	}
	log.Debugf("PathResolver initialized: execDir=%s, configDir=%s", pr.executableDir, configDir)
	return pr, nil
}

// ResolveDictPath returns the first existing location of a dictionary path.
// Absolute paths are returned as they are. Relative paths are tried against
// the working directory, the executable directory, its data/ directory and
// the config directory, in that order. When nothing exists the path is
// returned unchanged so the caller can report it.
func (pr *PathResolver) ResolveDictPath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}

	for _, candidate := range pr.candidates(path) {
		if FileExists(candidate) {
			log.Debugf("Found dictionary at: %s", candidate)
			return candidate
		}
		log.Debugf("Dictionary candidate not found: %s", candidate)
	}
	return path
}

func (pr *PathResolver) candidates(path string) []string {
	var out []string
	if cwd, err := os.Getwd(); err == nil {
		out = append(out, filepath.Join(cwd, path))
	}
	out = append(out,
		filepath.Join(pr.executableDir, path),
		filepath.Join(pr.executableDir, "data", path),
	)
	if pr.configDir != "" {
		out = append(out, filepath.Join(pr.configDir, path))
	}
	return out
}

// GetExecutableDir returns the directory containing the executable
func (pr *PathResolver) GetExecutableDir() string {
	return pr.executableDir
}
