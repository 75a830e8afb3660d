/*
Package resolver queries the firmware version of management controllers, such
as HPE iLOs, by fetching their “/xmldata?item=All” endpoint and extracting the
version token from the response body.

[Resolver.ResolveVersion] handles a single host synchronously: it tries the
configured schemes in order (HTTPS first, then HTTP, by default) and falls back
to the next scheme only on transport-level failures, including non-2xx
responses. There are no further retries.

Additionally, a [Resolver] can run queries on a goroutine-limited worker pool,
streaming [types.HostVersion] verdicts to a channel returned when creating the
Resolver.

	                 +---+
	HostVersion ---->| R +-->ch HostVersion
	                 +---+

For each submitted host the verdict stream first carries a notice with the
host in quality “resolving”, followed later by the final verdict of either
found, not found, or unreachable. A pool size of 1 processes hosts strictly
sequentially.

# Certificates

Management controllers almost always present self-signed certificates. By
default these fail TLS verification and thus the HTTPS attempt, so the HTTP
fallback kicks in. Only when explicitly asked to by [WithInsecure] does the
default fetcher skip certificate verification; this trades transport security
for reach and must remain an explicit operator decision.

# Acknowledgements

Under its hood, [Resolver] leverages [gammazero/workerpool] as the limiting
goroutine pool.

[gammazero/workerpool]: https://github.com/gammazero/workerpool
*/
package resolver
