/*
Package ping implements an optional ICMP(v4/v6)-based reachability pre-check
for hosts, so that hosts not even answering pings can be reported as
unreachable without waiting for HTTP timeouts.

	checker := ping.New(ping.WithCount(2), ping.AsUnprivileged())
	r, news := resolver.New(4, resolver.WithPrecheck(checker.Check))

A host is considered unreachable if the percentage of successfully received
ping replies doesn't reach or cross the Checker's threshold. This allows for
some legroom.

Privileged ICMP pings require either root or CAP_NET_RAW; unprivileged pings
need the process' group to be within the net.ipv4.ping_group_range sysctl.

# Acknowledgements

Under its hood, [Checker] leverages the incredible [go-ping/ping].

[go-ping/ping]: https://github.com/go-ping/ping
*/
package ping
