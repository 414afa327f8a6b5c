// ABOUTME: Availability gate in front of the completion collaborator
// ABOUTME: Cooldown after failures (go-cache TTL entries) plus a token-bucket call budget

package availability

import (
	"errors"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	nrlog "github.com/mauromedda/nova-router/internal/log"
)

// ErrCoolingDown is reported by Check while a failure cooldown is active.
var ErrCoolingDown = errors.New("completion provider cooling down")

// ErrRateLimited is reported by Check when the call budget is exhausted.
var ErrRateLimited = errors.New("completion call budget exhausted")

// Config controls the gate. Zero values disable the corresponding check.
type Config struct {
	Key           string        // Provider identity, e.g. "anthropic/claude-haiku-4-5"
	Cooldown      time.Duration // How long to skip the provider after a failure.
	RatePerSecond float64       // Sustained call rate; 0 means unlimited.
	Burst         int           // Bucket size; defaults to 1 when a rate is set.
}

// Gate implements intent.Gate.
type Gate struct {
	key      string
	cooldown time.Duration
	failures *gocache.Cache
	limiter  *rate.Limiter
}

// NewGate creates a gate from cfg.
func NewGate(cfg Config) *Gate {
	g := &Gate{
		key:      cfg.Key,
		cooldown: cfg.Cooldown,
	}
	if cfg.Cooldown > 0 {
		g.failures = gocache.New(cfg.Cooldown, 2*cfg.Cooldown)
	}
	if cfg.RatePerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		g.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}
	return g
}

// Check returns nil when a call may proceed, or the reason it may not.
// A permitted call consumes one token from the budget.
func (g *Gate) Check() error {
	if g.failures != nil {
		if _, cooling := g.failures.Get(g.key); cooling {
			return ErrCoolingDown
		}
	}
	if g.limiter != nil && !g.limiter.Allow() {
		return ErrRateLimited
	}
	return nil
}

// Allow reports whether a call may proceed.
func (g *Gate) Allow() bool {
	if err := g.Check(); err != nil {
		nrlog.Debug("availability: %s: %v", g.key, err)
		return false
	}
	return true
}

// Observe records the outcome of a call. A failure starts the cooldown;
// a success clears it.
func (g *Gate) Observe(err error) {
	if g.failures == nil {
		return
	}
	if err != nil {
		g.failures.Set(g.key, err.Error(), g.cooldown)
		return
	}
	g.failures.Delete(g.key)
}

// LastFailure returns the error text that started the active cooldown.
func (g *Gate) LastFailure() (string, bool) {
	if g.failures == nil {
		return "", false
	}
	v, ok := g.failures.Get(g.key)
	if !ok {
		return "", false
	}
	return v.(string), true
}
