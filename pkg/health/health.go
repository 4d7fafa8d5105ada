// Package health serves liveness and readiness probes backed by periodic
// checks. A check flips to unhealthy only after three consecutive failures
// and back to healthy after one success.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

const (
	failureThreshold = 3
	successThreshold = 1
)

// CheckFunc reports nil when the checked dependency is healthy.
type CheckFunc func(ctx context.Context) error

// probe is a registered check. run is only called from the probe's own
// goroutine (or directly in tests); handlers read healthy and lastErr.
type probe struct {
	name    string
	timeout time.Duration
	check   CheckFunc

	healthy atomic.Bool
	lastErr atomic.Pointer[error]

	fails int
	oks   int
}

func newProbe(name string, timeout time.Duration, check CheckFunc) *probe {
	p := &probe{name: name, timeout: timeout, check: check}
	p.healthy.Store(true)
	return p
}

func (p *probe) run(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err := p.check(ctx)
	p.lastErr.Store(&err)
	if err != nil {
		p.oks = 0
		p.fails++
		if p.fails >= failureThreshold {
			p.healthy.Store(false)
		}
		return
	}
	p.fails = 0
	p.oks++
	if p.oks >= successThreshold {
		p.healthy.Store(true)
	}
}

func (p *probe) failure() (string, bool) {
	if p.healthy.Load() {
		return "", false
	}
	if e := p.lastErr.Load(); e != nil && *e != nil {
		return (*e).Error(), true
	}
	return "check is unhealthy", true
}

// Health holds the liveness and readiness probes of the service.
type Health struct {
	ready atomic.Bool

	mu        sync.RWMutex
	liveness  []*probe
	readiness []*probe
	cancel    context.CancelFunc
}

// New returns a Health that is not ready until SetReady(true).
func New() *Health {
	return &Health{}
}

// AddLivenessCheck registers a check reported by /livez.
func (h *Health) AddLivenessCheck(name string, timeout time.Duration, check CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.liveness = append(h.liveness, newProbe(name, timeout, check))
}

// AddReadinessCheck registers a check reported by /readyz.
func (h *Health) AddReadinessCheck(name string, timeout time.Duration, check CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.readiness = append(h.readiness, newProbe(name, timeout, check))
}

// Start runs every registered check immediately and then every interval,
// each on its own goroutine, until Stop or ctx cancellation.
func (h *Health) Start(ctx context.Context, interval time.Duration) {
	ctx, cancel := context.WithCancel(ctx)

	h.mu.Lock()
	h.cancel = cancel
	probes := append(append([]*probe(nil), h.liveness...), h.readiness...)
	h.mu.Unlock()

	for _, p := range probes {
		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				p.run(ctx)
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
				}
			}
		}()
	}
}

// Stop cancels the check goroutines. It is safe to call more than once.
func (h *Health) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
}

// SetReady marks the service as accepting traffic or draining.
func (h *Health) SetReady(ready bool) {
	h.ready.Store(ready)
}

// IsReady reports whether the service is marked ready and every readiness
// check passes.
func (h *Health) IsReady() bool {
	return h.ready.Load() && len(failures(h.snapshot(false))) == 0
}

func (h *Health) snapshot(live bool) []*probe {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if live {
		return append([]*probe(nil), h.liveness...)
	}
	return append([]*probe(nil), h.readiness...)
}

func failures(probes []*probe) map[string]string {
	out := make(map[string]string)
	for _, p := range probes {
		if msg, failed := p.failure(); failed {
			out[p.name] = msg
		}
	}
	return out
}

type statusResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// LiveEndpoint serves /livez: 200 when all liveness checks pass, 503 with
// the failing checks otherwise.
func (h *Health) LiveEndpoint(w http.ResponseWriter, _ *http.Request) {
	writeStatus(w, failures(h.snapshot(true)))
}

// ReadyEndpoint serves /readyz: 200 when the service is marked ready and all
// readiness checks pass, 503 otherwise.
func (h *Health) ReadyEndpoint(w http.ResponseWriter, _ *http.Request) {
	failed := failures(h.snapshot(false))
	if !h.ready.Load() {
		failed["_readiness"] = "service is not ready"
	}
	writeStatus(w, failed)
}

func writeStatus(w http.ResponseWriter, failed map[string]string) {
	resp := statusResponse{Status: "ok"}
	status := http.StatusOK
	if len(failed) > 0 {
		resp = statusResponse{Status: "unhealthy", Checks: failed}
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
