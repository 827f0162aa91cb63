package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	folio "github.com/alnah/go-folio"
	"github.com/alnah/go-folio/internal/assets"
	"github.com/alnah/go-folio/internal/config"
	"github.com/alnah/go-folio/internal/server"
	"github.com/alnah/go-folio/internal/visits"
)

// Server timeouts.
const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

// envFile is loaded before the FOLIO_* variables are read, if present.
const envFile = ".env"

// serveApp is a configured server and the resources it owns.
type serveApp struct {
	addr    string
	handler http.Handler
	logger  *slog.Logger
	closers []io.Closer
}

func (a *serveApp) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i].Close())
	}
	return errors.Join(errs...)
}

// runServe hosts the portfolio until ctx is canceled.
func runServe(ctx context.Context, args []string, env *Environment) error {
	var f serveFlags
	if err := parse(serveFlagSet(&f, env.Stderr), args); err != nil {
		return helpIsSuccess(err)
	}

	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: loading %s: %v", ErrUsage, envFile, err)
	}
	e, err := server.LoadEnv()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	app, err := newServeApp(ctx, f, e, env)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	ln, err := net.Listen("tcp", app.addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", app.addr, err)
	}
	return serve(ctx, ln, app.handler, app.logger)
}

// serve runs an HTTP server on ln and shuts it down gracefully when ctx ends.
func serve(ctx context.Context, ln net.Listener, h http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: readHeaderTimeout,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// newServeApp wires the site, browser pool, visit store and routes.
func newServeApp(ctx context.Context, f serveFlags, e server.Env, env *Environment) (*serveApp, error) {
	// FOLIO_CONFIG at its default behaves like an absent --config: a
	// missing folio.yaml falls back to defaults.
	if f.common.config == "" && e.Config != config.DefaultName {
		f.common.config = e.Config
	}

	s, err := loadSite(f.common, env)
	if err != nil {
		return nil, err
	}
	logger := newJSONLogger(env.Stderr, f.common.verbose)
	s.logger = logger

	dir, err := assets.OpenSiteDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", folio.ErrInvalidBaseDir, err)
	}

	embedBase := path.Join(server.PathAssets, path.Dir(s.layout.Embed)) + "/"
	pageOpts := []folio.AssemblerOption{
		folio.WithClock(env.Now),
		folio.WithDocumentBase(embedBase),
	}
	if f.linked {
		pageOpts = append(pageOpts, folio.WithLinkedImages(server.PathAssets))
	}
	pages, err := s.assembler(pageOpts...)
	if err != nil {
		return nil, err
	}
	renderer, err := s.renderer()
	if err != nil {
		return nil, err
	}

	// An unusable page at startup is logged, not fatal: the asset directory
	// is read on every request and may be fixed while serving.
	if _, err := s.render(ctx, pages, renderer); err != nil {
		logger.Warn("page does not build yet", "err", err)
	}

	app := &serveApp{addr: e.Addr, logger: logger}
	if f.addr != "" {
		app.addr = f.addr
	}

	opts := []server.Option{
		server.WithLogger(logger),
		server.WithAssets(dir),
	}

	if e.PDF && !f.noPDF {
		workers := e.Workers
		if f.workers > 0 {
			workers = f.workers
		}
		pool := folio.NewSnapshotPool(folio.ResolvePoolSize(workers))
		app.closers = append(app.closers, pool)

		pdfPages, err := s.assembler(
			folio.WithClock(env.Now),
			folio.WithDocumentBase(s.fileDocumentBase()),
		)
		if err != nil {
			_ = app.Close()
			return nil, err
		}
		opts = append(opts, server.WithPDF(pool, pdfPages))
		logger.Debug("pdf enabled", "pool", pool.Size())
	}

	if e.VisitsDB != "" {
		salt := e.IPSalt
		if salt == "" {
			salt = randomSalt()
			logger.Warn("FOLIO_IP_SALT not set, unique visitor counts reset on restart")
		}
		store, err := visits.Open(ctx, e.VisitsDB, salt)
		if err != nil {
			_ = app.Close()
			return nil, err
		}
		app.closers = append(app.closers, store)
		opts = append(opts, server.WithVisits(store), server.WithAdminToken(e.AdminToken))
	}

	gin.SetMode(gin.ReleaseMode)
	app.handler = server.New(pages, renderer, s.theme, opts...).Handler()
	return app, nil
}

func newJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

func randomSalt() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b) // crypto/rand.Read never fails on supported platforms
	return hex.EncodeToString(b)
}
