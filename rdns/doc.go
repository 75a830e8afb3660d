/*
Package rdns implements a simple limiting DNS client-request execution pool for
reverse (PTR) lookups, so that hosts in fwdig reports can be annotated with
their DNS names.

Usage

	dnsclnt := dns.Client{}
	pool, err := rdns.New(
	    context.Background(),
	    4,                    // number of parallel DNS connections and thus workers
	    &dnsclnt,             // DNS client
	    "127.0.0.53:53",      // address of server/resolver
	)
	pool.LookupPTR(ctx,
	    "192.0.2.1",
	    func(names []string, err error) {
	        // do something with names, unless there's an error reported
	    })
	pool.StopWait()

# Acknowledgements

Under its hood, [DnsPool] leverages [gammazero/workerpool] as the limiting
goroutine pool and [miekg/dns] for talking DNS.

[gammazero/workerpool]: https://github.com/gammazero/workerpool
[miekg/dns]: https://github.com/miekg/dns
*/
package rdns
