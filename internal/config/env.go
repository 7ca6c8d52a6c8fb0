package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from a .env file.
//
// Search order (stops at the first file found):
//  1. Explicit paths passed as arguments (test use).
//  2. Directory of the running executable.
//  3. Current working directory — fallback for `go run ./cmd/forge`.
//
// If no .env is found anywhere, the program continues with system env vars.
func LoadEnv(paths ...string) {
	if len(paths) > 0 {
		if err := godotenv.Load(paths...); err != nil {
			slog.Debug("no .env file at specified path(s), using system environment", "paths", paths)
		}
		return
	}

	for _, p := range envCandidates() {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			slog.Warn("failed to load .env", "path", p, "error", err)
		} else {
			slog.Debug("loaded .env", "path", p)
		}
		return
	}
}

// envCandidates returns the ordered list of .env paths to probe.
func envCandidates() []string {
	var candidates []string
	seen := map[string]bool{}

	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			candidates = append(candidates, p)
		}
	}

	if exe, err := os.Executable(); err == nil {
		if real, err := filepath.EvalSymlinks(exe); err == nil {
			exe = real
		}
		add(filepath.Join(filepath.Dir(exe), ".env"))
	}
	if cwd, err := os.Getwd(); err == nil {
		add(filepath.Join(cwd, ".env"))
	}
	return candidates
}
