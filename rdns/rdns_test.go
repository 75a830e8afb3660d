// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package rdns

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/miekg/dns"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/onsi/gomega/gleak"
	. "github.com/thediveo/success"
)

// startDNS runs an in-process DNS server answering PTR queries from the
// specified map of reverse names to host names, returning the server's
// address.
func startDNS(ptrs map[string][]string) string {
	GinkgoHelper()
	pc := Successful(net.ListenPacket("udp", "127.0.0.1:0"))
	started := make(chan struct{})
	server := &dns.Server{
		PacketConn:        pc,
		NotifyStartedFunc: func() { close(started) },
		Handler: dns.HandlerFunc(func(w dns.ResponseWriter, req *dns.Msg) {
			m := new(dns.Msg)
			m.SetReply(req)
			q := req.Question[0]
			names, ok := ptrs[q.Name]
			if !ok || q.Qtype != dns.TypePTR {
				m.SetRcode(req, dns.RcodeNameError)
			}
			for _, name := range names {
				m.Answer = append(m.Answer, &dns.PTR{
					Hdr: dns.RR_Header{Name: q.Name, Rrtype: dns.TypePTR, Class: dns.ClassINET, Ttl: 60},
					Ptr: dns.Fqdn(name),
				})
			}
			_ = w.WriteMsg(m)
		}),
	}
	go func() { _ = server.ActivateAndServe() }()
	Eventually(started).Should(BeClosed())
	DeferCleanup(func() { _ = server.Shutdown() })
	return pc.LocalAddr().String()
}

var _ = Describe("reverse DNS connection pool", func() {

	BeforeEach(func() {
		goodgos := Goroutines()
		DeferCleanup(func() {
			Eventually(Goroutines).WithTimeout(3 * time.Second).WithPolling(250 * time.Millisecond).
				ShouldNot(HaveLeaked(goodgos))
		})
	})

	It("runs a goroutine-limited set of DNS tasks", NodeTimeout(30*time.Second), func(ctx context.Context) {
		const poolsize = 3

		dnsclnt := dns.Client{Net: "udp"}
		// We're never going to contact this DNS "server", we just need just
		// some address so we can allocate some connections.
		pool := Successful(New(ctx, poolsize, &dnsclnt, "127.0.0.1:53"))

		dnsconns := map[*dns.Conn]int{}
		var mu sync.Mutex
		taskfn := func(conn *dns.Conn) {
			mu.Lock()
			defer mu.Unlock()
			dnsconns[conn]++
			time.Sleep(100 * time.Millisecond)
		}

		numtasks := poolsize * 2
		for i := 0; i < numtasks; i++ {
			pool.Submit(taskfn)
		}

		pool.StopWait()

		total := 0
		for _, count := range dnsconns {
			total += count
		}
		Expect(total).To(Equal(numtasks), "number of submitted and executed tasks mismatch")
		Expect(len(dnsconns)).To(BeNumerically("<=", poolsize))
	})

	It("looks up names", NodeTimeout(10*time.Second), func(ctx context.Context) {
		addr := startDNS(map[string][]string{
			"1.2.0.192.in-addr.arpa.": {"ilo-b.example.org", "ilo-a.example.org"},
			"1.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.8.b.d.0.1.0.0.2.ip6.arpa.": {"ilo6.example.org"},
		})
		dnsclnt := dns.Client{Net: "udp"}
		pool := Successful(New(ctx, 2, &dnsclnt, addr))
		defer pool.StopWait()

		ch4 := make(chan []string, 1)
		pool.LookupPTR(ctx, "192.0.2.1", func(names []string, err error) {
			defer GinkgoRecover()
			Expect(err).NotTo(HaveOccurred())
			ch4 <- names
		})
		ch6 := make(chan []string, 1)
		pool.LookupPTR(ctx, "2001:db8::1", func(names []string, err error) {
			defer GinkgoRecover()
			Expect(err).NotTo(HaveOccurred())
			ch6 <- names
		})
		Eventually(ch4).Should(Receive(Equal([]string{"ilo-a.example.org", "ilo-b.example.org"})))
		Eventually(ch6).Should(Receive(Equal([]string{"ilo6.example.org"})))
	})

	It("reports lookup failures", NodeTimeout(10*time.Second), func(ctx context.Context) {
		addr := startDNS(map[string][]string{})
		dnsclnt := dns.Client{Net: "udp"}
		pool := Successful(New(ctx, 1, &dnsclnt, addr))
		defer pool.StopWait()

		errs := make(chan error, 2)
		pool.LookupPTR(ctx, "192.0.2.42", func(names []string, err error) {
			errs <- err
		})
		pool.LookupPTR(ctx, "not-an-address", func(names []string, err error) {
			errs <- err
		})
		Eventually(errs).Should(Receive(MatchError(ContainSubstring("NXDOMAIN"))))
		Eventually(errs).Should(Receive(HaveOccurred()))
	})

	It("reports cancelled lookups", NodeTimeout(10*time.Second), func(ctx context.Context) {
		dnsclnt := dns.Client{Net: "udp"}
		pool := Successful(New(ctx, 1, &dnsclnt, "127.0.0.1:53"))
		defer pool.StopWait()

		ctx, cancel := context.WithCancel(ctx)
		cancel()
		errs := make(chan error, 1)
		pool.LookupPTR(ctx, "192.0.2.1", func(names []string, err error) {
			errs <- err
		})
		Eventually(errs).Should(Receive(MatchError(context.Canceled)))
	})

})
