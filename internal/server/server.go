// Package server exposes the calculators as a JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rgehrsitz/itax/internal/breakeven"
	"github.com/rgehrsitz/itax/internal/calculation"
	"github.com/rgehrsitz/itax/internal/compare"
	"github.com/rgehrsitz/itax/internal/domain"
	"go.uber.org/zap"
)

// DefaultMaxBodySize caps request bodies; every payload here is a handful of numbers
const DefaultMaxBodySize int64 = 64 << 10

type handler struct {
	logger      *zap.Logger
	maxBodySize int64
	version     string

	taxCalc *calculation.IncomeTaxCalculator
	compare *compare.CompareEngine
	salary  *calculation.SalaryCalculator
	solver  *breakeven.Solver
}

// NewHandler constructs the router serving the calculator API.
func NewHandler(logger *zap.Logger, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxBodySize <= 0 {
		maxBodySize = DefaultMaxBodySize
	}
	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	taxCalc := calculation.NewIncomeTaxCalculatorFY2025()
	h := &handler{
		logger:      logger,
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
		taxCalc:     taxCalc,
		compare:     compare.NewCompareEngine(taxCalc),
		salary:      calculation.NewSalaryCalculator(),
		solver:      breakeven.NewSolver(taxCalc, breakeven.DefaultSolverOptions()),
	}
	h.compare.SetLogger(logger.Sugar())
	h.salary.SetLogger(logger.Sugar())

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestSize(maxBodySize))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/version", h.handleVersion)

		r.Post("/tax", h.handleTax)
		r.Post("/tax/compare", h.handleCompare)
		r.Post("/breakeven", h.handleBreakEven)
		r.Post("/salary", serveCalc(h, "server.salary", h.salary.Calculate))
		r.Post("/offers/compare", h.handleOffers)

		r.Post("/sip", serveCalc(h, "server.sip", calculation.CalculateSIP))
		r.Post("/fd", serveCalc(h, "server.fd", calculation.CalculateFD))
		r.Post("/epf", serveCalc(h, "server.epf", calculation.CalculateEPF))
		r.Post("/eps", serveCalc(h, "server.eps", calculation.CalculateEPS))
		r.Post("/nps", serveCalc(h, "server.nps", calculation.CalculateNPS))
		r.Post("/gratuity", serveCalc(h, "server.gratuity", calculation.CalculateGratuity))
		r.Post("/retirement", serveCalc(h, "server.retirement", calculation.CalculateRetirementCorpus))
		r.Post("/hra", serveCalc(h, "server.hra", calculation.CalculateHRAExemption))
	})

	return r
}

// Run serves handler on addr until ctx is cancelled, then drains in-flight requests
func Run(ctx context.Context, addr string, h http.Handler, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("op", "server.Run"), zap.String("address", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down", zap.String("op", "server.Run"))
		return srv.Shutdown(shutdownCtx)
	}
}

type taxRequest struct {
	domain.TaxInput
	Age *int `json:"age,omitempty"` // overrides ageCategory when present
}

func (req taxRequest) toInput() domain.TaxInput {
	input := req.TaxInput
	if req.Age != nil {
		input.AgeCategory = domain.GetAgeCategory(*req.Age)
	}
	return input
}

type offersRequest struct {
	Current calculation.SalaryInput `json:"current"`
	Offer   calculation.SalaryInput `json:"offer"`
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
		"taxYear": domain.TaxYear,
	})
}

func (h *handler) handleTax(w http.ResponseWriter, r *http.Request) {
	const op = "server.tax"
	var req taxRequest
	if !h.decode(w, r, &req, op) {
		return
	}
	result, err := h.taxCalc.Calculate(req.toInput())
	if err != nil {
		h.respondCalcError(w, r, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	const op = "server.compare"
	var req taxRequest
	if !h.decode(w, r, &req, op) {
		return
	}
	rc, err := h.compare.Compare(r.Context(), "", req.toInput())
	if err != nil {
		h.respondCalcError(w, r, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, rc)
}

func (h *handler) handleBreakEven(w http.ResponseWriter, r *http.Request) {
	const op = "server.breakeven"
	var req breakeven.Request
	if !h.decode(w, r, &req, op) {
		return
	}
	result, err := h.solver.Solve(r.Context(), req)
	if err != nil {
		h.respondCalcError(w, r, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *handler) handleOffers(w http.ResponseWriter, r *http.Request) {
	const op = "server.offers"
	var req offersRequest
	if !h.decode(w, r, &req, op) {
		return
	}
	cmp, err := h.salary.CompareOffers(req.Current, req.Offer)
	if err != nil {
		h.respondCalcError(w, r, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, cmp)
}

// serveCalc adapts a pure calculator to a JSON POST handler
func serveCalc[In, Out any](h *handler, op string, calc func(In) (Out, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in In
		if !h.decode(w, r, &in, op) {
			return
		}
		out, err := calc(in)
		if err != nil {
			h.respondCalcError(w, r, err, op)
			return
		}
		h.writeJSON(w, http.StatusOK, out)
	}
}

func (h *handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err), op)
		return false
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, "invalid request body: unexpected data after JSON value", op)
		return false
	}
	return true
}

// respondCalcError maps calculator errors to HTTP status codes
func (h *handler) respondCalcError(w http.ResponseWriter, r *http.Request, err error, op string) {
	status := http.StatusInternalServerError
	var beErr *breakeven.BreakEvenError
	switch {
	case errors.Is(err, calculation.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.As(err, &beErr) && beErr.Operation == "validate_request":
		status = http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
	}
	h.respondErrorWithOp(w, r, status, err.Error(), op)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	fields := []zap.Field{
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	}
	if r != nil {
		fields = append(fields, zap.String("request_id", RequestIDFromContext(r.Context())))
	}
	h.logger.Warn("request failed", fields...)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
