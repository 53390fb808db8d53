// Package http serves the JSON API over the entity providers.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"blinky/internal/backend"
	"blinky/internal/core"
	"blinky/internal/events"
	"blinky/internal/metrics"
	"blinky/internal/state"
)

// Publisher is the optional change-event sink. A nil publisher disables
// event publishing without touching the handlers.
type Publisher interface {
	Publish(ctx context.Context, msg events.ChangeMessage) error
}

// Server wires the providers to the HTTP routes.
type Server struct {
	echo      *echo.Echo
	logger    *slog.Logger
	publisher Publisher

	projects *state.Provider[core.Project]
	income   *state.Provider[core.Income]
	expenses *state.Provider[core.Expense]
	goals    *state.Provider[core.SavingsGoal]
}

// Option configures a Server.
type Option func(*Server)

// WithPublisher attaches a change-event publisher.
func WithPublisher(p Publisher) Option {
	return func(s *Server) { s.publisher = p }
}

// WithLogger overrides the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// NewServer builds the server over the given backend and loads every
// collection so the in-memory state is warm before the first request.
func NewServer(ctx context.Context, b backend.Backend, opts ...Option) (*Server, error) {
	s := &Server{
		logger:   slog.Default(),
		projects: state.NewProvider(b.Projects()),
		income:   state.NewProvider(b.Income()),
		expenses: state.NewProvider(b.Expenses()),
		goals:    state.NewProvider(b.Goals()),
	}
	for _, opt := range opts {
		opt(s)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { _, err := s.projects.FetchAll(gctx); return err })
	g.Go(func() error { _, err := s.income.FetchAll(gctx); return err })
	g.Go(func() error { _, err := s.expenses.FetchAll(gctx); return err })
	g.Go(func() error { _, err := s.goals.FetchAll(gctx); return err })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.setupEcho()
	return s, nil
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(s.logRequests)
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORS())
	e.Use(echomw.RateLimiter(echomw.NewRateLimiterMemoryStore(50)))

	e.GET("/healthz", s.handleHealth)
	e.GET("/readyz", s.handleReady)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	registerCollection(e, s, "/projects", events.EntityProject, s.projects)
	registerCollection(e, s, "/income", events.EntityIncome, s.income)
	registerCollection(e, s, "/expenses", events.EntityExpense, s.expenses)
	registerCollection(e, s, "/savings-goals", events.EntitySavingsGoal, s.goals)

	// The project collection also accepts a delete with the id in the
	// body, kept for clients that cannot set a path parameter.
	e.DELETE("/projects", deleteByBody(s, events.EntityProject, s.projects))

	e.GET("/summary", s.handleSummary)

	s.echo = e
}

func (s *Server) logRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		req := c.Request()
		res := c.Response()
		duration := time.Since(start)
		metrics.ObserveHTTPRequest(req.Method, c.Path(), strconv.Itoa(res.Status), duration)
		s.logger.Info("request served",
			"method", req.Method,
			"uri", req.RequestURI,
			"status", res.Status,
			"duration", duration.String(),
			"request_id", res.Header().Get(echo.HeaderXRequestID))
		return err
	}
}

// Handler exposes the underlying handler for embedding in an http.Server.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves on the given address until the listener fails.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(c echo.Context) error {
	if s.projects.Loading() || s.income.Loading() || s.expenses.Loading() || s.goals.Loading() {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "loading"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}

// handleSummary aggregates the finance collections, optionally windowed to
// one calendar month via ?year= and ?month=.
func (s *Server) handleSummary(c echo.Context) error {
	var window core.Window
	yearParam, monthParam := c.QueryParam("year"), c.QueryParam("month")
	if (yearParam == "") != (monthParam == "") {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "year and month must be supplied together"})
	}
	if yearParam != "" {
		year, err := strconv.Atoi(yearParam)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid year"})
		}
		month, err := strconv.Atoi(monthParam)
		if err != nil || month < 1 || month > 12 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid month"})
		}
		window = core.MonthWindow(year, time.Month(month))
	}

	summary := core.Summarize(s.income.Items(), s.expenses.Items(), window)
	return c.JSON(http.StatusOK, map[string]any{
		"summary": summary,
		"goals":   summary.Outlooks(s.goals.Items()),
	})
}

func (s *Server) publish(ctx context.Context, entity, op, id string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.NewChangeMessage(entity, op, id)); err != nil {
		s.logger.Warn("change event not published", "entity", entity, "op", op, "error", err)
	}
}
