// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/siemens/fwdig/extract"
	"github.com/siemens/fwdig/types"

	"github.com/gammazero/workerpool"
	"github.com/thediveo/lxkns/log"
)

// Path is the management endpoint serving the firmware information.
const Path = "/xmldata?item=All"

// DefaultTimeout limits each individual HTTP(S) request.
const DefaultTimeout = 5 * time.Second

// DefaultSchemes is the default order of schemes to try.
var DefaultSchemes = []string{"https", "http"}

// ErrTransport signals that a host could not be reached using any scheme, or
// that a particular scheme attempt failed.
var ErrTransport = errors.New("transport failure")

// Result is the outcome of querying a single host.
type Result struct {
	Quality types.Quality // Found, NotFound, or Unreachable
	Version string        // version, if Found
	Scheme  string        // scheme of the successful, or otherwise last, attempt
	Err     error         // reason for NotFound or Unreachable
}

// Resolver queries management controllers for their firmware versions.
// Resolvers use a goroutine-limited worker pool when fed using
// [Resolver.Query] or [Resolver.QueryStream].
type Resolver struct {
	schemes   []string
	timeout   time.Duration
	insecure  bool
	fetcher   Fetcher
	extractor extract.Extractor
	precheck  func(ctx context.Context, host string) error

	workers  *workerpool.WorkerPool // workers running incoming queries concurrently.
	news     chan types.HostVersion // results/status stream channel.
	stopOnce sync.Once
}

// ResolverOption can be passed to New when creating new Resolver objects.
type ResolverOption func(*Resolver)

// New returns a new [Resolver] with a maximum worker pool of the specified size
// as well as a “verdict stream”. The verdict channel sends not only the final
// verdicts, but also the hosts as they get submitted for querying.
//
// The new resolver defaults to trying HTTPS before HTTP with a timeout of 5s
// per request, verifying server certificates, and using the structured XML
// extraction. This can be changed using the options:
//   - [WithSchemeOrder]
//   - [WithTimeout]
//   - [WithInsecure]
//   - [WithExtractor]
//   - [WithFetcher]
//   - [WithPrecheck]
func New(size int, options ...ResolverOption) (*Resolver, <-chan types.HostVersion) {
	return newResolver(size, size, options...)
}

// newResolver returns a new [Resolver] with a maximum worker pool of the
// specified size and a verdict stream with the specified buffer size.
func newResolver(workersize int, chansize int, options ...ResolverOption) (*Resolver, <-chan types.HostVersion) {
	news := make(chan types.HostVersion, chansize)
	r := &Resolver{
		schemes:   DefaultSchemes,
		timeout:   DefaultTimeout,
		extractor: extract.XML(),
		workers:   workerpool.New(workersize),
		news:      news,
	}
	for _, opt := range options {
		opt(r)
	}
	if r.fetcher == nil {
		r.fetcher = NewHTTPFetcher(r.timeout, r.insecure)
	}
	return r, news
}

// WithSchemeOrder sets the order of schemes to try, such as "http", "https".
func WithSchemeOrder(schemes ...string) ResolverOption {
	if len(schemes) == 0 {
		panic("Resolver: at least one scheme required")
	}
	for _, scheme := range schemes {
		if scheme != "http" && scheme != "https" {
			panic(fmt.Errorf("Resolver: scheme must be either http or https, got: %q", scheme))
		}
	}
	return func(r *Resolver) {
		r.schemes = append([]string(nil), schemes...)
	}
}

// WithTimeout sets the timeout of each individual request made by the default
// fetcher.
func WithTimeout(timeout time.Duration) ResolverOption {
	return func(r *Resolver) {
		r.timeout = timeout
	}
}

// WithInsecure tells the default fetcher to skip TLS certificate verification,
// so that HTTPS endpoints with self-signed certificates can be queried.
func WithInsecure() ResolverOption {
	return func(r *Resolver) {
		r.insecure = true
	}
}

// WithExtractor sets the version extraction strategy.
func WithExtractor(e extract.Extractor) ResolverOption {
	return func(r *Resolver) {
		r.extractor = e
	}
}

// WithFetcher replaces the default HTTP fetcher.
func WithFetcher(f Fetcher) ResolverOption {
	return func(r *Resolver) {
		r.fetcher = f
	}
}

// WithPrecheck runs the specified check before any HTTP request; if the check
// fails, the host is considered to be unreachable without further ado.
func WithPrecheck(check func(ctx context.Context, host string) error) ResolverOption {
	return func(r *Resolver) {
		r.precheck = check
	}
}

// URL returns the management endpoint URL of host for the specified scheme.
// Hosts are addresses without ports, so any host containing a colon is an IPv6
// literal and gets bracketed.
func URL(scheme string, host string) string {
	if strings.Contains(host, ":") && !strings.HasPrefix(host, "[") {
		host = "[" + host + "]"
	}
	return scheme + "://" + host + Path
}

// ResolveVersion queries the specified host for its firmware version, trying
// the configured schemes in order until one returns a successful response.
// Only transport failures and non-2xx responses trigger trying the next
// scheme; a successful response without a recognizable version is final.
//
// ResolveVersion never returns errors in any other form than the Result.
func (r *Resolver) ResolveVersion(ctx context.Context, host string) Result {
	if r.precheck != nil {
		if err := r.precheck(ctx, host); err != nil {
			log.Debugf("precheck of %s failed: %s", host, err.Error())
			return Result{
				Quality: types.Unreachable,
				Err:     fmt.Errorf("%w: %s: %w", ErrTransport, host, err),
			}
		}
	}
	res := Result{Quality: types.Unreachable}
	for _, scheme := range r.schemes {
		if err := ctx.Err(); err != nil {
			res.Err = fmt.Errorf("%w: %w", ErrTransport, err)
			return res
		}
		url := URL(scheme, host)
		res.Scheme = scheme
		log.Debugf("fetching %s", url)
		status, body, err := r.fetcher.Fetch(ctx, url)
		if err != nil {
			log.Debugf("fetching %s failed: %s", url, err.Error())
			res.Err = fmt.Errorf("%w: %w", ErrTransport, err)
			continue
		}
		if status < 200 || status > 299 {
			log.Debugf("fetching %s returned HTTP status %d", url, status)
			res.Err = fmt.Errorf("%w: %s: HTTP status %d", ErrTransport, url, status)
			continue
		}
		version, err := r.extractor.Extract(body)
		if err != nil {
			return Result{
				Quality: types.NotFound,
				Scheme:  scheme,
				Err:     fmt.Errorf("%s: %w", url, err),
			}
		}
		return Result{
			Quality: types.Found,
			Version: version,
			Scheme:  scheme,
		}
	}
	return res
}

// QueryStream reads hosts to be queried from a channel until the channel is
// closed or the specified context gets cancelled. It does not return until
// then, so callers typically run QueryStream in a separate goroutine.
func (r *Resolver) QueryStream(ctx context.Context, ch <-chan types.HostVersion) {
	for {
		select {
		case hv, ok := <-ch:
			if !ok {
				return
			}
			r.Query(ctx, hv)
		case <-ctx.Done():
			return
		}
	}
}

// Query enqueues the specified host for querying its firmware version. The
// final verdict is sent to the channel returned together with the newly
// created [Resolver]. Additionally, an initial notice for the host in quality
// Resolving is sent beforehand.
//
// If the specified context gets cancelled, the pending queries won't be echoed
// to the verdict stream at all, so the affected hosts stay in quality
// Resolving. However, spurious verdicts might still appear on the verdict
// stream due to the uncontrollable order of verdict sending and context
// cancellation detection.
func (r *Resolver) Query(ctx context.Context, hv types.HostVersion) {
	verdict := hv.WithQuality(types.Resolving, "", "", nil)
	select {
	case r.news <- verdict: // not yet the final one ;)
	case <-ctx.Done():
		return
	}
	r.workers.Submit(func() {
		// A quick and non-blocking check to see if the context has been
		// cancelled before we start our work...
		if ctx.Err() != nil {
			return
		}
		res := r.ResolveVersion(ctx, verdict.Address)
		if ctx.Err() != nil {
			return
		}
		select {
		case r.news <- verdict.WithQuality(res.Quality, res.Version, res.Scheme, res.Err):
		case <-ctx.Done():
		}
	})
}

// StopWait waits for all queued queries to get processed and then finally
// closes the verdict stream channel.
func (r *Resolver) StopWait() {
	r.stopOnce.Do(func() {
		r.workers.StopWait()
		if f, ok := r.fetcher.(interface{ CloseIdleConnections() }); ok {
			f.CloseIdleConnections()
		}
		close(r.news)
	})
}
