// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package rdns

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/gammazero/workerpool"
	"github.com/miekg/dns"
)

// DnsPool is a (size-limited) pool of DNS client connections talking with the
// same DNS resolver address.
type DnsPool struct {
	workers *workerpool.WorkerPool
	mu      sync.Mutex // protects the pool of DNS connections
	free    []*dns.Conn
}

// New returns a pool of the specified size of DNS client connections, with each
// connection using the specified context and talking to the same DNS resolver
// address.
//
// The passed context is used for creating (dialing) the DNS client connections
// only. It is not directly passed to the submitted DNS tasks, so task
// submitters are themselves responsible for capturing the necessary context in
// their task function closure.
func New(ctx context.Context, size int, dnsclnt *dns.Client, addr string) (*DnsPool, error) {
	free := make([]*dns.Conn, 0, size)
	for i := 0; i < size; i++ {
		conn, err := dnsclnt.DialContext(ctx, addr)
		if err != nil {
			// Immediately release all connections created so far.
			for _, conn := range free {
				conn.Close()
			}
			return nil, err
		}
		free = append(free, conn)
	}
	return &DnsPool{
		workers: workerpool.New(size),
		free:    free,
	}, nil
}

// Submit a task to the DNS client connection pool, where it gets enqueued to be
// executed on an available DNS client connection.
func (p *DnsPool) Submit(task func(conn *dns.Conn)) {
	p.workers.Submit(func() { p.task(task) })
}

// LookupPTR is a convenience method for submitting a PTR query for the
// specified IP address and gathering the names it maps to. The names (without
// trailing dots, sorted) or an error if the lookup failed is passed to the
// specified callback function fn.
//
// Please note that when the passed context is cancelled this will cancel all
// scheduled lookups, which then report the context's error.
func (p *DnsPool) LookupPTR(ctx context.Context, addr string, fn func([]string, error)) {
	p.Submit(func(conn *dns.Conn) {
		var names []string
		var err error
		defer func() { fn(names, err) }() // ...ensure triggering the result callback on our way out

		select {
		case <-ctx.Done():
			err = ctx.Err()
			return
		default:
		}

		var arpa string
		arpa, err = dns.ReverseAddr(addr)
		if err != nil {
			return
		}
		msg := dns.Msg{
			MsgHdr: dns.MsgHdr{Id: dns.Id()},
		}
		msg.SetQuestion(arpa, dns.TypePTR)
		dnsclnt := dns.Client{}
		var r *dns.Msg
		r, _, err = dnsclnt.ExchangeWithConn(&msg, conn)
		if err != nil {
			return
		}
		for _, rr := range r.Answer {
			if ptr, ok := rr.(*dns.PTR); ok {
				names = append(names, strings.TrimSuffix(ptr.Ptr, "."))
			}
		}
		if len(names) == 0 {
			err = fmt.Errorf("LookupPTR: query for %q yields no answers (%s)",
				addr, dns.RcodeToString[r.Rcode])
			return
		}
		sort.Strings(names)
	})
}

// task grabs the next free DNS client and passes it to the specified function.
// After the function returns, the connection is put back into the free list.
func (p *DnsPool) task(task func(conn *dns.Conn)) {
	// pop off a free DNS client connection,
	// https://ueokande.github.io/go-slice-tricks/,
	p.mu.Lock()
	if len(p.free) == 0 {
		panic("no free DNS client connection available")
	}
	last := len(p.free) - 1
	conn := p.free[last]
	p.free = p.free[:last]
	p.mu.Unlock()
	// run the task with its assigned DNS client connection...
	task(conn)
	// ...and push the DNS client connection back into the free list.
	p.mu.Lock()
	p.free = append(p.free, conn)
	p.mu.Unlock()
}

// StopWait waits for all enqueued lookups or generic DNS request tasks to
// finish, and then shuts down the pool.
func (p *DnsPool) StopWait() {
	p.workers.StopWait()
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, conn := range p.free {
		conn.Close()
	}
	p.free = nil
}
