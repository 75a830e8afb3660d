/*
Package addr validates lines of input text as host addresses: IPv4 in
dotted-quad notation, IPv6 in colon-hex notation, either optionally followed
by a CIDR suffix “/prefixlen”.

The IPv4 checks are strict in that there must be exactly four decimal
components, each in the range [0..255]. In contrast, the IPv6 check is
deliberately permissive: any text consisting only of hex digits and colons
passes, without checking the number of groups or the “::” collapsing rules.

IPv4 prefix lengths default to the full range [0..32]. The [StrictSubnetting]
option restricts them to the classful-looking set {8, 16, 24, 32} that some
calling environments expect.
*/
package addr
