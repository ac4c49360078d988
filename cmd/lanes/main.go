package main

import (
	"os"
	"slices"
	"strings"

	"lanes/internal/cli"
	"lanes/internal/store"
)

// Global flags that take a value. Unknown flags are skipped without their value so an
// item id is never swallowed.
var valueFlags = []string{"--dir", "--config", "--format", "--log-level", "--poll-interval"}

// rewriteItemShortcut turns `lanes <item-id>` into `lanes items show <item-id>`. Cobra
// treats the first positional token as a subcommand, so argv is rewritten before
// parsing; persistent flags may come first.
func rewriteItemShortcut(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	insert := func(i int) []string {
		out := make([]string, 0, len(argv)+2)
		out = append(out, argv[:i]...)
		out = append(out, "items", "show")
		return append(out, argv[i:]...)
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		switch {
		case a == "":
			continue
		case a == "--":
			if i+1 < len(argv) && store.IsItemID(argv[i+1]) {
				return insert(i + 1)
			}
			return argv
		case strings.HasPrefix(a, "-"):
			if !strings.Contains(a, "=") && slices.Contains(valueFlags, a) {
				i++
			}
			continue
		case store.IsItemID(a):
			return insert(i)
		default:
			return argv
		}
	}
	return argv
}

func main() {
	os.Args = rewriteItemShortcut(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
