// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package report

import (
	"context"
	"errors"
	"time"

	"github.com/siemens/fwdig/types"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/onsi/gomega/gleak"
)

func host(line int, addr string) types.HostVersion {
	return types.HostVersion{Line: line, Text: addr, Address: addr, Prefix: -1}
}

var _ = Describe("report map", func() {

	BeforeEach(func() {
		goodgos := Goroutines()
		DeferCleanup(func() {
			Eventually(Goroutines).WithTimeout(3 * time.Second).WithPolling(250 * time.Millisecond).
				ShouldNot(HaveLeaked(goodgos))
		})
	})

	It("orders by input line", func() {
		m := NewMap()
		m.Update(host(3, "10.0.0.3"))
		m.Update(host(1, "10.0.0.1"))
		m.Update(host(2, "10.0.0.2"))
		Expect(m.Get()).To(HaveExactElements(
			HaveField("Line", 1), HaveField("Line", 2), HaveField("Line", 3)))
		Expect(m.Pending()).To(Equal(3))
	})

	It("only moves qualities forward", func() {
		m := NewMap()
		hv := host(1, "10.0.0.1")
		m.Update(hv)
		m.Update(hv.WithQuality(types.Resolving, "", "", nil))
		Expect(m.Get()).To(ConsistOf(HaveField("Quality", types.Resolving)))
		m.Update(hv.WithQuality(types.Unresolved, "", "", nil))
		Expect(m.Get()).To(ConsistOf(HaveField("Quality", types.Resolving)))
		m.Update(hv.WithQuality(types.Found, "2.30", "https", nil))
		Expect(m.Get()).To(ConsistOf(And(
			HaveField("Quality", types.Found), HaveField("Version", "2.30"))))
		m.Update(hv.WithQuality(types.Unreachable, "", "http", errors.New("gone")))
		Expect(m.Get()).To(ConsistOf(HaveField("Quality", types.Found)))
		Expect(m.Pending()).To(BeZero())
	})

	It("keeps reverse DNS annotations", func() {
		m := NewMap()
		hv := host(1, "10.0.0.1")
		m.Update(hv)
		m.Annotate(1, []string{"ilo.example.org"})
		m.Annotate(42, []string{"nowhere.example.org"})
		m.Update(hv.WithQuality(types.Found, "2.30", "https", nil))
		Expect(m.Get()).To(ConsistOf(And(
			HaveField("Quality", types.Found),
			HaveField("Names", ConsistOf("ilo.example.org")))))
	})

	It("tracks updates until the stream closes", NodeTimeout(5*time.Second), func(ctx context.Context) {
		m := NewMap()
		news := make(chan types.HostVersion)
		done := make(chan error)
		go func() { done <- m.Track(ctx, news) }()
		news <- host(1, "10.0.0.1")
		news <- host(1, "10.0.0.1").WithQuality(types.NotFound, "", "https", nil)
		close(news)
		Eventually(done).Should(Receive(BeNil()))
		Expect(m.Get()).To(ConsistOf(HaveField("Quality", types.NotFound)))
	})

	It("stops tracking when cancelled", NodeTimeout(5*time.Second), func(ctx context.Context) {
		ctx, cancel := context.WithCancel(ctx)
		done := make(chan error)
		go func() { done <- NewMap().Track(ctx, make(chan types.HostVersion)) }()
		cancel()
		Eventually(done).Should(Receive(MatchError(context.Canceled)))
	})

})
