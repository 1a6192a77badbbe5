package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/perrydb/perrydb/internal/cmd"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:]))
}

// run executes the perrydb CLI with args and returns the process exit code:
// 0 on success, 1 on any failure.
func run(ctx context.Context, args []string) int {
	rootCmd := cmd.NewRootCmd()
	rootCmd.SetArgs(args)
	if err := fang.Execute(ctx, rootCmd); err != nil {
		return 1
	}
	return 0
}
