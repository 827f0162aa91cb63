// Package server hosts the portfolio page over HTTP with gin.
//
// Every request to "/" builds and renders a fresh page, so edits to the
// asset directory show up on reload. The server keeps no per-request state
// beyond what the visit store records.
package server

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	folio "github.com/alnah/go-folio"
	"github.com/alnah/go-folio/internal/assets"
	"github.com/alnah/go-folio/internal/visits"
)

// Routes.
const (
	PathIndex  = "/"
	PathAssets = "/assets"
	PathPDF    = "/portfolio.pdf"
	PathHealth = "/healthz"
	PathStats  = "/admin/stats"
)

// defaultStatsDays is the day window of /admin/stats without ?days=.
const defaultStatsDays = 30

// maxStatsDays bounds ?days=.
const maxStatsDays = 366

// Snapshotter renders HTML to a document format. *folio.SnapshotPool
// satisfies it.
type Snapshotter interface {
	Snapshot(ctx context.Context, html string, format folio.Format) ([]byte, error)
}

// VisitStore records and summarizes visits. *visits.Store satisfies it.
type VisitStore interface {
	Record(ctx context.Context, v visits.Visit) error
	Stats(ctx context.Context, days int) (visits.Stats, error)
}

// PageBuilder builds a portfolio page. *folio.Assembler satisfies it.
type PageBuilder interface {
	BuildPage(ctx context.Context) (*folio.Page, error)
}

// Server serves the portfolio.
type Server struct {
	pages      PageBuilder
	renderer   *folio.Renderer
	theme      folio.Theme
	assetDir   *assets.SiteDir
	snapshots  Snapshotter
	pdfPages   PageBuilder
	visits     VisitStore
	adminToken string
	logger     *slog.Logger
	engine     *gin.Engine
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and error logger. Default discards.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithAssets serves dir under /assets, for pages built in linked image mode.
func WithAssets(dir *assets.SiteDir) Option {
	return func(s *Server) { s.assetDir = dir }
}

// WithPDF enables /portfolio.pdf. pages builds the page to print; nil
// reuses the page builder of "/". Browsers load the snapshot from a temp
// file, so pages should inline its images.
func WithPDF(snap Snapshotter, pages PageBuilder) Option {
	return func(s *Server) {
		s.snapshots = snap
		s.pdfPages = pages
	}
}

// WithVisits records visits to the page and PDF routes in store.
func WithVisits(store VisitStore) Option {
	return func(s *Server) { s.visits = store }
}

// WithAdminToken enables /admin/stats behind a bearer token.
func WithAdminToken(token string) Option {
	return func(s *Server) { s.adminToken = token }
}

// New creates a Server. Call gin.SetMode before New to pick the gin mode.
func New(pages PageBuilder, renderer *folio.Renderer, theme folio.Theme, opts ...Option) *Server {
	s := &Server{
		pages:    pages,
		renderer: renderer,
		theme:    theme,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.pdfPages == nil {
		s.pdfPages = s.pages
	}
	s.engine = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger))

	tracked := r.Group("/")
	if s.visits != nil {
		tracked.Use(s.trackVisits())
	}
	tracked.GET(PathIndex, s.handleIndex)
	if s.snapshots != nil {
		tracked.GET(PathPDF, s.handlePDF)
	}

	r.GET(PathHealth, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if s.assetDir != nil {
		r.StaticFS(PathAssets, filesOnly{http.FS(s.assetDir.FS())})
	}

	if s.adminToken != "" && s.visits != nil {
		r.GET(PathStats, s.requireToken(), s.handleStats)
	}
	return r
}

func (s *Server) render(ctx context.Context, pages PageBuilder) (string, error) {
	page, err := pages.BuildPage(ctx)
	if err != nil {
		return "", err
	}
	return s.renderer.Render(ctx, page, s.theme)
}

func (s *Server) handleIndex(c *gin.Context) {
	html, err := s.render(c.Request.Context(), s.pages)
	if err != nil {
		s.fail(c, "page build failed", err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (s *Server) handlePDF(c *gin.Context) {
	ctx := c.Request.Context()
	html, err := s.render(ctx, s.pdfPages)
	if err != nil {
		s.fail(c, "page build failed", err)
		return
	}

	pdf, err := s.snapshots.Snapshot(ctx, html, folio.FormatPDF)
	if err != nil {
		s.fail(c, "pdf snapshot failed", err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="portfolio.pdf"`)
	c.Data(http.StatusOK, folio.FormatPDF.ContentType(), pdf)
}

func (s *Server) handleStats(c *gin.Context) {
	days := defaultStatsDays
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > maxStatsDays {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be between 0 and " + strconv.Itoa(maxStatsDays)})
			return
		}
		days = n
	}

	st, err := s.visits.Stats(c.Request.Context(), days)
	if err != nil {
		s.logger.Error("visit stats failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stats unavailable"})
		return
	}
	c.JSON(http.StatusOK, st)
}

// fail logs err and answers 500 with a plain page; details stay in the log.
func (s *Server) fail(c *gin.Context, msg string, err error) {
	level := slog.LevelError
	if errors.Is(err, context.Canceled) {
		level = slog.LevelInfo
	}
	s.logger.Log(c.Request.Context(), level, msg, "path", c.Request.URL.Path, "err", err)
	c.Data(http.StatusInternalServerError, "text/plain; charset=utf-8",
		[]byte("The portfolio is temporarily unavailable.\n"))
}

// requireToken accepts "Authorization: Bearer <token>" only.
func (s *Server) requireToken() gin.HandlerFunc {
	want := []byte(s.adminToken)
	return func(c *gin.Context) {
		got, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(got), want) != 1 {
			c.Header("WWW-Authenticate", `Bearer realm="folio"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

// trackVisits records successful GETs. Requests with "DNT: 1" are skipped.
func (s *Server) trackVisits() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.GetHeader("DNT") == "1" || c.Writer.Status() != http.StatusOK {
			return
		}
		v := visits.Visit{
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			Path:      c.FullPath(),
			At:        time.Now(),
		}
		ctx := context.WithoutCancel(c.Request.Context())
		if err := s.visits.Record(ctx, v); err != nil {
			s.logger.Warn("visit not recorded", "err", err)
		}
	}
}

func requestLogger(l *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		l.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"bytes", c.Writer.Size(),
			"duration", time.Since(start),
		)
	}
}

// filesOnly hides directory listings from the asset route.
type filesOnly struct {
	fs http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil || info.IsDir() {
		_ = file.Close()
		return nil, os.ErrNotExist
	}
	return file, nil
}
