// Package collector serves the device collections over http to pollers that
// cannot run a browser themselves.
package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"netinventory/internal/components/assert"
	"netinventory/internal/components/telemetry"
	"netinventory/internal/scrapers/netgear"
	"netinventory/internal/scrapers/sg200"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

const (
	report_server_authorize = "server.authorize"
	report_server_collect   = "server.collect"
)

const placeholder = "N/A"

const maxBodyBytes = 64 << 10

type SwitchEngine interface {
	FetchMacTable(ctx context.Context, address, username, password string) ([]sg200.MacEntry, error)
	FetchSystemSummary(ctx context.Context, address, username, password string) (sg200.SystemSummary, error)
}

type RouterEngine interface {
	FetchAccessControlEntries(ctx context.Context, address, username, password string) ([]netgear.AccessEntry, error)
}

type Options struct {
	Switches  SwitchEngine
	Routers   RouterEngine
	Auth      Authorizer
	RateLimit RateLimitConfig
	// RequestTimeout bounds a single collection, zero means 2 minutes.
	RequestTimeout time.Duration
	Tel            telemetry.API
}

type Server struct {
	switches SwitchEngine
	routers  RouterEngine
	auth     Authorizer
	limiter  *rate.Limiter
	timeout  time.Duration
	tracer   trace.Tracer
	tel      telemetry.API
}

func NewServer(opts Options) *Server {
	assert.NotNil(opts.Switches)
	assert.NotNil(opts.Routers)
	assert.NotNil(opts.Tel)

	limit := rate.Limit(opts.RateLimit.PerSecond)
	if opts.RateLimit.PerSecond <= 0 {
		limit = rate.Inf
	}
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}

	return &Server{
		switches: opts.Switches,
		routers:  opts.Routers,
		auth:     opts.Auth,
		limiter:  rate.NewLimiter(limit, opts.RateLimit.Burst),
		timeout:  timeout,
		tracer:   otel.Tracer("netinventory/collector"),
		tel:      telemetry.NewScopedAPI("collector", opts.Tel),
	}
}

// Handler routes every endpoint of the collector.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.health)
	mux.HandleFunc("POST /sg200/mac-table", s.collect(s.macTable))
	mux.HandleFunc("POST /sg200/system-summary", s.collect(s.systemSummary))
	mux.HandleFunc("POST /netgear/access-control", s.collect(s.accessControl))
	return mux
}

type deviceRequest struct {
	IP   string `json:"ip"`
	User string `json:"user"`
	Pass string `json:"pass"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type macTableResponse struct {
	SwitchIP string           `json:"switch_ip"`
	Entries  []sg200.MacEntry `json:"entries"`
}

type accessControlResponse struct {
	RouterIP string                `json:"router_ip"`
	Entries  []netgear.AccessEntry `json:"entries"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// collectFunc runs one collection and returns the response body.
type collectFunc func(ctx context.Context, req deviceRequest) (any, error)

func (s *Server) collect(fn collectFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := s.tracer.Start(r.Context(), r.Method+" "+r.URL.Path)
		defer span.End()

		if status, msg := s.auth.Authorize(r); status != 0 {
			s.tel.ReportWarning(report_server_authorize, r.URL.Path, remoteHost(r), msg)
			span.SetStatus(codes.Error, msg)
			writeJSON(w, status, errorResponse{Error: msg})
			return
		}

		if !s.limiter.Allow() {
			span.SetStatus(codes.Error, "rate limited")
			writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "too many requests, retry later"})
			return
		}

		var req deviceRequest
		err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req)
		if err != nil && !errors.Is(err, io.EOF) {
			span.SetStatus(codes.Error, err.Error())
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Error: fmt.Sprintf("invalid JSON body: %s", err),
			})
			return
		}
		req.IP = strings.TrimSpace(req.IP)
		if req.IP == "" || req.User == "" || req.Pass == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Error: "ip, user, and pass fields are required in JSON body",
			})
			return
		}
		span.SetAttributes(attribute.String("device.address", req.IP))

		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		s.tel.ReportDebug(report_server_collect, r.URL.Path, req.IP)
		body, err := fn(ctx, req)
		if err != nil {
			s.tel.ReportBroken(report_server_collect, r.URL.Path, req.IP, err)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, body)
	}
}

func (s *Server) macTable(ctx context.Context, req deviceRequest) (any, error) {
	entries, err := s.switches.FetchMacTable(ctx, req.IP, req.User, req.Pass)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []sg200.MacEntry{}
	}
	return macTableResponse{SwitchIP: req.IP, Entries: entries}, nil
}

func (s *Server) systemSummary(ctx context.Context, req deviceRequest) (any, error) {
	summary, err := s.switches.FetchSystemSummary(ctx, req.IP, req.User, req.Pass)
	if err != nil {
		return nil, err
	}
	return summaryResponse(summary, req.IP), nil
}

// summaryResponse drops uptime ticks and guarantees the fields pollers key on.
func summaryResponse(summary sg200.SystemSummary, address string) map[string]string {
	out := make(map[string]string, len(summary)+3)
	for field, value := range summary {
		out[field] = value
	}
	delete(out, "system_uptime_ticks")
	for _, field := range []string{sg200.FieldFirmwareVersion, sg200.FieldModelDescription} {
		if strings.TrimSpace(out[field]) == "" {
			out[field] = placeholder
		}
	}
	out["switch_ip"] = address
	return out
}

func (s *Server) accessControl(ctx context.Context, req deviceRequest) (any, error) {
	entries, err := s.routers.FetchAccessControlEntries(ctx, req.IP, req.User, req.Pass)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []netgear.AccessEntry{}
	}
	return accessControlResponse{RouterIP: req.IP, Entries: entries}, nil
}
