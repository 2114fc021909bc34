// Command apcalc evaluates arbitrary-precision integer expressions.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cockroachdb/apint/internal/app"
	apperrors "github.com/cockroachdb/apint/internal/errors"
)

func main() {
	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n%s\n", err, app.Usage(os.Args[0]))
		os.Exit(apperrors.ExitCode(err))
	}
	os.Exit(application.Run(context.Background(), os.Stdout))
}
