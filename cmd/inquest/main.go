package main

import (
	"os"
	"strings"

	"inquest-cli/internal/cli"
)

func isClaimID(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "claim-") && len(s) > len("claim-")
}

// rewriteDirectClaimLookupArgs makes `inquest <claim-id>` work like
// `inquest claims show <claim-id>`. Cobra treats the first non-flag token as
// a subcommand, so argv is rewritten before parsing. Persistent flags may
// come first, so the first positional token is what matters, not argv[1].
func rewriteDirectClaimLookupArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--dir":       true,
		"--config":    true,
		"--parse-url": true,
		"--format":    true,
	}
	boolFlags := map[string]bool{
		"--pretty":  true,
		"--verbose": true,
		"-v":        true,
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isClaimID(argv[i+1]) {
				out := make([]string, 0, len(argv)+2)
				out = append(out, argv[:i+1]...)
				out = append(out, "claims", "show")
				out = append(out, argv[i+1:]...)
				return out
			}
			return argv
		}

		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") {
				continue
			}
			if boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++
				continue
			}
			continue
		}

		if isClaimID(a) {
			out := make([]string, 0, len(argv)+2)
			out = append(out, argv[:i]...)
			out = append(out, "claims", "show")
			out = append(out, argv[i:]...)
			return out
		}
		return argv
	}

	return argv
}

func main() {
	os.Args = rewriteDirectClaimLookupArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
