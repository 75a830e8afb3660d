/*
Package types defines fwdig's information model. Which is rather simple and
revolves around [HostVersion], a single line of input together with the
query [Quality] of the host it names.

Hosts move through the qualities in one direction only:

	Unresolved --> Resolving --> Found | NotFound | Unreachable

while input lines that don't even name a host end up as Invalid right away.

[HostVersion] is passed around by value through channels between the resolver
workers and the consumers of their verdicts, so there is no locking necessary
and no consumer ever sees another consumer's updates. Use
[HostVersion.WithQuality] to derive updated verdicts.
*/
package types
