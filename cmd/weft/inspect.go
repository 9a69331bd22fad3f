package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/vango-dev/weft/internal/demo"
	"github.com/vango-dev/weft/internal/inspector"
)

func inspectCmd(e *env) *cobra.Command {
	var (
		addr  string
		theme string
		tick  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Run the demo live behind the inspector",
		Long: `Mount the demo on a running event loop and serve the inspector.

Routes:
  GET /roots            mounted roots
  GET /roots/{id}       one root with its described tree
  GET /roots/{id}/html  the root's container HTML
  GET /ws               commit stream
  GET /metrics          Prometheus metrics

Examples:
  weft inspect
  weft inspect --addr :7070 --tick 500ms`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = e.cfg.Inspector.Addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runInspect(ctx, e, addr, theme, tick, func() {
				success(cmd.OutOrStdout(), "Inspector on http://%s", addr)
			})
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from config)")
	cmd.Flags().StringVar(&theme, "theme", "dark", "Theme provided to the tree")
	cmd.Flags().DurationVar(&tick, "tick", time.Second, "Clock tick interval")
	return cmd
}

// runInspect serves until ctx is done. ready runs once the listeners are
// configured.
func runInspect(ctx context.Context, e *env, addr, theme string, tick time.Duration, ready func()) error {
	insp := inspector.New(e.logger)
	defer insp.Close()

	rt := e.runtime(insp.Observer())
	page := demo.NewPage("weft inspect")

	// The loop outlives ctx so the final unmount can run on it.
	loopCtx, cancelLoop := context.WithCancel(context.Background())
	defer cancelLoop()
	loopDone := make(chan error, 1)
	go func() { loopDone <- rt.Run(loopCtx) }()

	mounted := make(chan error, 1)
	rt.Dispatch(func() {
		mounted <- demo.Mount(rt, page, demo.Options{
			Theme:     theme,
			Subscribe: demo.Ticker(rt, tick),
		})
	})
	select {
	case err := <-mounted:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		return nil
	}

	servers := []*http.Server{{Addr: addr, Handler: insp.Handler(e.registry)}}
	if m := e.cfg.Metrics.Addr; m != "" && m != addr {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{}))
		servers = append(servers, &http.Server{Addr: m, Handler: mux})
	}

	errCh := make(chan error, len(servers))
	for _, srv := range servers {
		go func() {
			e.logger.Info("listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()
	}
	if ready != nil {
		ready()
	}

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			e.logger.Warn("shutdown", "addr", srv.Addr, "error", err)
		}
	}

	// Unmount on the loop goroutine so effect cleanups stop the ticker.
	unmounted := make(chan struct{})
	if rt.Dispatch(func() { rt.Unmount(page.App); close(unmounted) }) {
		select {
		case <-unmounted:
		case <-time.After(time.Second):
		}
	}
	cancelLoop()
	<-loopDone
	return serveErr
}
