package main

import (
	"context"
	"log/slog"
	"net"
	"sync"
	"time"
)

// connProbeTTL is how long a successful probe verdict is trusted before the
// next fetch re-checks.
const connProbeTTL = 30 * time.Second

// connProbeTimeout bounds a single probe dial. Kept well under the taunt
// request timeout so an offline verdict arrives before the user notices.
const connProbeTimeout = 2 * time.Second

// ConnChecker verifies outbound reachability with a cheap TCP dial before an
// API call is attempted. The appliance often sits on flaky WiFi; probing
// first keeps doomed fetches fast and the failure logs specific. A positive
// verdict is cached briefly, failures are always re-probed.
type ConnChecker struct {
	addr    string
	timeout time.Duration
	logger  *slog.Logger

	mu     sync.Mutex
	online bool
	okAt   time.Time
}

func NewConnChecker(addr string, timeout time.Duration, logger *slog.Logger) *ConnChecker {
	return &ConnChecker{addr: addr, timeout: timeout, logger: logger}
}

// Online reports whether the probe address is currently reachable.
func (c *ConnChecker) Online(ctx context.Context) bool {
	c.mu.Lock()
	if c.online && time.Since(c.okAt) < connProbeTTL {
		c.mu.Unlock()
		return true
	}
	c.mu.Unlock()

	d := net.Dialer{Timeout: c.timeout}
	conn, err := d.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		c.logger.Warn("connectivity probe failed", "addr", c.addr, "error", err)
		c.mu.Lock()
		c.online = false
		c.mu.Unlock()
		return false
	}
	conn.Close()

	c.mu.Lock()
	c.online = true
	c.okAt = time.Now()
	c.mu.Unlock()
	return true
}
