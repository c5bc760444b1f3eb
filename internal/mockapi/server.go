// Package mockapi serves canned patient and search data over the same
// HTTP routes as the real backend, for local development.
package mockapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/docmcquery/mcquery-tui/internal/model"
)

type Options struct {
	// Latency is added before every search response.
	Latency time.Duration
}

type handler struct {
	fixtures *Fixtures
	opts     Options
}

// New builds the echo server.
func New(fx *Fixtures, logger zerolog.Logger, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(requestID())
	e.Use(requestLogger(logger))

	h := &handler{fixtures: fx, opts: opts}
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/patients_list", h.listPatients)
	e.POST("/all_requests", h.allRequests)
	return e
}

func (h *handler) listPatients(c echo.Context) error {
	patients := h.fixtures.Patients
	if patients == nil {
		patients = []model.Patient{}
	}
	return c.JSON(http.StatusOK, patients)
}

func (h *handler) allRequests(c echo.Context) error {
	var req model.SearchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}
	if strings.TrimSpace(req.PatientInfo) == "" {
		return c.JSON(http.StatusBadRequest, errorBody("input is required"))
	}

	if h.opts.Latency > 0 {
		select {
		case <-time.After(h.opts.Latency):
		case <-c.Request().Context().Done():
			return c.Request().Context().Err()
		}
	}

	resp, ok := h.fixtures.responseFor(req.PatientID, req.PatientInfo)
	if !ok {
		return c.JSON(http.StatusNotFound, errorBody("patient not found"))
	}
	return c.JSON(http.StatusOK, resp)
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

// requestID keeps a caller supplied X-Request-ID or assigns a new one.
func requestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(echo.HeaderXRequestID)
			if rid == "" {
				rid = uuid.New().String()
			}
			c.Set("request_id", rid)
			c.Response().Header().Set(echo.HeaderXRequestID, rid)
			return next(c)
		}
	}
}

func requestLogger(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			rid, _ := c.Get("request_id").(string)

			err := next(c)

			evt := logger.Info()
			if err != nil {
				evt = logger.Error().Err(err)
			}

			evt.
				Str("request_id", rid).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", c.Response().Status).
				Dur("latency", time.Since(start)).
				Msg("request")

			return err
		}
	}
}
