package main

import (
	"os"
	"strings"

	"roster-cli/internal/cli"
)

func isLocation(s string) bool {
	s = strings.TrimSpace(s)
	for _, p := range []string{"/employees", "/dashboard", "/bookmarks", "?"} {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// rewriteLocationArgs turns `roster /employees?...` into `roster --location /employees?...`.
//
// Cobra treats the first non-flag token as a subcommand, so argv is rewritten before
// parsing. Persistent flags may come first, so the first positional token is found by
// skipping the values of known flags.
func rewriteLocationArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--config":      true,
		"--env-file":    true,
		"--state-dir":   true,
		"--api-url":     true,
		"--api-timeout": true,
		"--log-file":    true,
		"--log-level":   true,
		"--theme":       true,
		"--format":      true,
		"--location":    true,
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		}

		// First positional token.
		if !isLocation(a) {
			return argv
		}
		out := make([]string, 0, len(argv)+1)
		out = append(out, argv[:i]...)
		out = append(out, "--location")
		out = append(out, argv[i:]...)
		return out
	}
	return argv
}

func main() {
	os.Args = rewriteLocationArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
