package main

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/vango-dev/weft/internal/demo"
	"github.com/vango-dev/weft/internal/snapshot"
)

func renderCmd(e *env) *cobra.Command {
	var (
		out    string
		title  string
		theme  string
		start  int
		frames int
		todos  []string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the demo to an HTML snapshot",
		Long: `Mount the demo, run the event loop until it is idle and write
the document.

--out takes a file path, a directory ending in "/", or s3://bucket/key.
Without it the snapshot goes to snapshot.out from the config, then stdout.

Examples:
  weft render
  weft render --out dist/index.html --theme light
  weft render --out s3://snapshots/demo.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				out = e.cfg.Snapshot.Out
			}

			rt := e.runtime()
			page := demo.NewPage(title)
			err := demo.Mount(rt, page, demo.Options{
				Theme: theme,
				Start: start,
				Todos: todos,
			})
			if err != nil {
				return err
			}
			if err := rt.Settle(frames); err != nil {
				return err
			}

			snap := snapshot.Snapshot{
				RootID:  rt.RootID(page.App),
				HTML:    []byte(page.HTML()),
				TakenAt: time.Now(),
			}
			if strings.HasSuffix(out, "/") {
				out = filepath.Join(out, snapshot.Name(snap))
			}

			sink, err := snapshot.Open(out, e.cfg.Snapshot.S3, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := sink.Write(cmd.Context(), snap); err != nil {
				return err
			}
			e.logger.Info("snapshot written",
				"sink", sink.String(),
				"root", snap.RootID,
				"bytes", len(snap.HTML),
				"frames", rt.Loop().Frames())
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Destination (file, dir/, or s3://bucket/key)")
	cmd.Flags().StringVar(&title, "title", "weft", "Document title")
	cmd.Flags().StringVar(&theme, "theme", "dark", "Theme provided to the tree")
	cmd.Flags().IntVar(&start, "start", 0, "Initial counter value")
	cmd.Flags().IntVar(&frames, "frames", 50, "Paint frames allowed before giving up")
	cmd.Flags().StringSliceVar(&todos, "todo", []string{"read the docs", "render a tree"}, "Initial todo items")
	return cmd
}
