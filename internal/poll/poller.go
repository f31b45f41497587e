// Package poll asks a collector for every device of an inventory and turns the
// answers into NAC endpoint records.
package poll

import (
	"context"
	"fmt"

	"netinventory/internal/components/assert"
	"netinventory/internal/components/telemetry"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	report_poller_device = "poller.device"
	report_poller_test   = "poller.test"
)

// Result is the poll response, exactly one of the fields is set.
type Result struct {
	Endpoints []Endpoint `json:"endpoints,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// TestResult is the connectivity check response.
type TestResult struct {
	Succeeded bool   `json:"succeeded"`
	ResultMsg string `json:"result_msg,omitempty"`
	Error     string `json:"error,omitempty"`
}

type Options struct {
	Client *CollectorClient
	Kind   Kind
	// Concurrency bounds in-flight collector requests, zero means 4.
	Concurrency int
	// PerSecond bounds how fast requests start, zero means unlimited.
	PerSecond float64
	Tel       telemetry.API
}

type Poller struct {
	client      *CollectorClient
	kind        Kind
	concurrency int
	limiter     *rate.Limiter
	tel         telemetry.API
}

func NewPoller(opts Options) *Poller {
	assert.NotNil(opts.Client)
	assert.NotNil(opts.Tel)

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}
	limit := rate.Inf
	if opts.PerSecond > 0 {
		limit = rate.Limit(opts.PerSecond)
	}
	kind := opts.Kind
	if kind == "" {
		kind = KindSG200
	}

	return &Poller{
		client:      opts.Client,
		kind:        kind,
		concurrency: concurrency,
		limiter:     rate.NewLimiter(limit, 1),
		tel:         telemetry.NewScopedAPI("poller", opts.Tel),
	}
}

func (p *Poller) collect(ctx context.Context, dev Device) ([]Endpoint, error) {
	switch p.kind {
	case KindNetgear:
		entries, err := p.client.AccessControl(ctx, dev)
		if err != nil {
			return nil, err
		}
		return RouterEndpoints(dev.Address, entries), nil
	default:
		entries, err := p.client.MacTable(ctx, dev)
		if err != nil {
			return nil, err
		}
		return SwitchEndpoints(dev.Address, entries), nil
	}
}

func (p *Poller) collectCount(ctx context.Context, dev Device) (int, error) {
	switch p.kind {
	case KindNetgear:
		entries, err := p.client.AccessControl(ctx, dev)
		return len(entries), err
	default:
		entries, err := p.client.MacTable(ctx, dev)
		return len(entries), err
	}
}

// Poll collects every device, a failing device is reported and skipped. The
// endpoints keep inventory order.
func (p *Poller) Poll(ctx context.Context, devices []Device) Result {
	if len(devices) == 0 {
		return Result{Error: fmt.Sprintf("No %s devices configured.", p.kind.Label())}
	}

	perDevice := make([][]Endpoint, len(devices))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(p.concurrency)
	for i, dev := range devices {
		err := p.limiter.Wait(groupCtx)
		if err != nil {
			break
		}
		group.Go(func() error {
			endpoints, err := p.collect(groupCtx, dev)
			if err != nil {
				p.tel.ReportWarning(report_poller_device, dev.Address, err)
				return nil
			}
			perDevice[i] = endpoints
			return nil
		})
	}
	group.Wait()

	var endpoints []Endpoint
	for _, list := range perDevice {
		endpoints = append(endpoints, list...)
	}
	p.tel.ReportCount(report_poller_device, int64(len(endpoints)))

	if len(endpoints) == 0 {
		return Result{Error: fmt.Sprintf("No endpoints collected from %s collector.", p.kind.Label())}
	}
	return Result{Endpoints: endpoints}
}

// Test checks that the collector can reach the first device of the inventory.
func (p *Poller) Test(ctx context.Context, devices []Device) TestResult {
	if len(devices) == 0 {
		return TestResult{Error: fmt.Sprintf("No valid %s entry found in the inventory.", p.kind.Label())}
	}
	dev := devices[0]

	count, err := p.collectCount(ctx, dev)
	if err != nil {
		p.tel.ReportWarning(report_poller_test, dev.Address, err)
		return TestResult{Error: err.Error()}
	}
	return TestResult{
		Succeeded: true,
		ResultMsg: fmt.Sprintf(
			"Successfully contacted collector and retrieved %d entries from %s %s.",
			count, p.kind.Label(), dev.Address,
		),
	}
}
