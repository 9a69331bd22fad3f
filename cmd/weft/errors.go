package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	werrors "github.com/vango-dev/weft/internal/errors"
)

// reportError prints err in the coded multi-line format. Errors without a
// code are reported as W023.
func reportError(w io.Writer, err error) {
	fmt.Fprint(w, werrors.FromError(err, "W023").Format())
}

func errorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "errors [code]",
		Short: "List error codes or explain one",
		Long: `Without arguments, list every error code weft can report.
With a code, print its message and hint.

Examples:
  weft errors
  weft errors W004`,
		Args: cobra.MaximumNArgs(1),
		// Skip config loading.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				for _, code := range werrors.GetAllCodes() {
					fmt.Fprintln(out, werrors.New(code).FormatCompact())
				}
				return nil
			}

			code := strings.ToUpper(args[0])
			t, ok := werrors.GetTemplate(code)
			if !ok {
				return fmt.Errorf("unknown error code %q", args[0])
			}
			fmt.Fprintf(out, "%s [%s]\n  %s\n", code, t.Category, t.Message)
			if t.Suggestion != "" {
				fmt.Fprintf(out, "  Hint: %s\n", t.Suggestion)
			}
			return nil
		},
	}
}
