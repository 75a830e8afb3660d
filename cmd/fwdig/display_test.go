// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"time"

	"github.com/siemens/fwdig/types"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("rendering", func() {

	hvs := []types.HostVersion{
		{Line: 1, Text: "10.0.0.1/8", Address: "10.0.0.1", Prefix: 8, Quality: types.Found, Version: "2.30"},
		{Line: 2, Text: "10.0.0", Prefix: -1, Quality: types.Invalid},
		{Line: 3, Text: "10.0.0.3", Address: "10.0.0.3", Prefix: -1, Quality: types.NotFound},
		{Line: 4, Text: "10.0.0.4", Address: "10.0.0.4", Prefix: -1, Quality: types.Resolving},
	}

	It("renders all hosts", func() {
		var out bytes.Buffer
		newRenderer(&out, false).Render(hvs)
		Expect(out.String()).To(Equal(
			"IP: 10.0.0.1   |    ILO_Version: 2.30\n" +
				"Invalid IP/CIDR format: 10.0.0\n" +
				"IP: 10.0.0.3   |    ILO_Version not found\n" +
				"IP: 10.0.0.4   |    not resolved\n"))
	})

	It("renders only found hosts when quiet", func() {
		var out bytes.Buffer
		newRenderer(&out, true).Render(hvs)
		Expect(out.String()).To(Equal("IP: 10.0.0.1   |    ILO_Version: 2.30\n"))
	})

	It("renders pending hosts with a spinner", func() {
		var out bytes.Buffer
		r := newRenderer(&out, true)
		r.spinner = newSpinnerWithFrames("ab")
		r.Render(hvs[3:])
		Expect(out.String()).To(Equal("IP: 10.0.0.4   |    a querying...\n"))
	})

})

var _ = Describe("spinner", func() {

	It("cycles through its frames", func() {
		s := newSpinnerWithFrames("ab")
		Expect(s.Spinner()).To(Equal("a "))
		s.advance()
		Expect(s.Spinner()).To(Equal("b "))
		s.advance()
		Expect(s.Spinner()).To(Equal("a "))
	})

	It("spins until stopped", func() {
		s := newSpinner()
		s.Start(10 * time.Millisecond)
		Eventually(s.Spinner).ShouldNot(Equal("⠉ "))
		s.Stop()
		s.Stop()
	})

})
