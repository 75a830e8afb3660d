// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package ping

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-ping/ping"
)

// ErrNoReplies signals that a host didn't answer enough pings.
var ErrNoReplies = errors.New("no replies or too many losses")

// Checker checks the reachability of hosts by pinging them.
type Checker struct {
	count               int           // number of pings to send.
	interval            time.Duration // distance between pings.
	thresholdPercentage uint          // percentage of successful pings for a reachable host.
	unprivileged        bool          // if true, uses UDP-based pings instead of privileged ICMPs.
}

// CheckerOption can be passed to New when creating new Checker objects.
type CheckerOption func(*Checker)

// New returns a new [Checker].
//
// The new checker defaults to pinging 3 times at intervals of 1s between each
// ping. The reachability threshold defaults to 50(%).
//
// The checker can be configured during creation using several options:
//   - [WithCount]
//   - [WithInterval]
//   - [WithThresholdPercentage]
//   - [AsUnprivileged]
func New(options ...CheckerOption) *Checker {
	c := &Checker{
		count:               3,
		interval:            time.Second,
		thresholdPercentage: 50,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// WithCount sets the number of pings for testing reachability of a host.
func WithCount(count uint) CheckerOption {
	return func(c *Checker) {
		c.count = int(count)
	}
}

// WithInterval sets the interval between consecutive pings.
func WithInterval(interval time.Duration) CheckerOption {
	return func(c *Checker) {
		c.interval = interval
	}
}

// AsUnprivileged tells the Checker to carry out unprivileged pings using UDP
// instead of ICMP packets.
func AsUnprivileged() CheckerOption {
	return func(c *Checker) {
		c.unprivileged = true
	}
}

// WithThresholdPercentage takes a percentage between 0 and 100 that specifies
// the percentage of successful ping responses required in order to consider
// the pinged host to be reachable.
func WithThresholdPercentage(threshold uint) CheckerOption {
	if threshold > 100 {
		panic(fmt.Errorf("Checker: threshold must be a percentage between 0 <= threshold <= 100, got: %d",
			threshold))
	}
	return func(c *Checker) {
		c.thresholdPercentage = threshold
	}
}

// Check pings the specified host address, returning nil if the host answered
// enough pings, otherwise an error.
//
// The check is automatically aborted when the specified context either meets
// its deadline or gets cancelled; the context's error is then returned.
func (c *Checker) Check(ctx context.Context, addr string) error {
	// A quick and non-blocking check to see if the context has been cancelled
	// before we start our work...
	if err := ctx.Err(); err != nil {
		return err
	}
	pinger, err := ping.NewPinger(addr)
	if err != nil {
		return err
	}
	pinger.SetPrivileged(!c.unprivileged)
	pinger.Count = c.count
	pinger.Interval = c.interval
	// Always limit waiting for the last ping to get reflected (or not)!
	pinger.Timeout = time.Duration(int64(c.interval) * int64(c.count+2))
	// While the ping is running, we need to monitor the context in case it
	// becomes "done" by either getting cancelled or reaching its deadline. The
	// done channel here works "the other way round" in the sense that it
	// terminates the concurrent context monitoring.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			pinger.Stop()
		case <-done:
		}
	}()
	if err := pinger.Run(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	stats := pinger.Statistics()
	if stats.PacketsRecv < pinger.Count*int(c.thresholdPercentage)/100 {
		return fmt.Errorf("%w: %d of %d", ErrNoReplies, stats.PacketsRecv, pinger.Count)
	}
	return nil
}
