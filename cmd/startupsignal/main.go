// Command startupsignal serves startup success predictions over a subprocess scorer
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"startupsignal/internal/platform/config"

	"github.com/spf13/cobra"
)

// exitError carries a process exit code out of a command
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

// app holds what every command shares; tests swap cfg and the streams
type app struct {
	cfg   config.Conf
	stdin io.Reader
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "startupsignal",
		Short:         "Startup success predictions over a subprocess scorer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newServeCmd(a),
		newPredictCmd(a),
		newMetadataCmd(a),
		newVersionCmd(),
	)
	return root
}

// execute runs the CLI and maps errors to exit codes
func execute(ctx context.Context, a *app, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetIn(a.stdin)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintln(stderr, "error:", ee.err)
		}
		return ee.code
	}
	fmt.Fprintln(stderr, "error:", err)
	return 1
}

func main() {
	a := &app{cfg: config.New(), stdin: os.Stdin}
	os.Exit(execute(context.Background(), a, os.Args[1:], os.Stdout, os.Stderr))
}
