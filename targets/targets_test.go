// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package targets

import (
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/thediveo/success"
)

var _ = Describe("target lists", func() {

	It("reads non-blank lines with their line numbers", func() {
		lines := Successful(Read(strings.NewReader(
			"192.168.1.1/24\n\n   \n# a comment\n  not.an.ip  \r\n2001:db8::1")))
		Expect(lines).To(Equal([]Line{
			{Number: 1, Text: "192.168.1.1/24"},
			{Number: 5, Text: "not.an.ip"},
			{Number: 6, Text: "2001:db8::1"},
		}))
	})

	It("reads overlong lines instead of failing", func() {
		long := strings.Repeat("x", 70*1024)
		lines := Successful(Read(strings.NewReader("10.0.0.1\n" + long + "\n10.0.0.2\n")))
		Expect(lines).To(Equal([]Line{
			{Number: 1, Text: "10.0.0.1"},
			{Number: 2, Text: long},
			{Number: 3, Text: "10.0.0.2"},
		}))
	})

	It("strips a leading byte order mark", func() {
		lines := Successful(Read(strings.NewReader("\ufeff10.0.0.1\r\n10.0.0.2")))
		Expect(lines).To(Equal([]Line{
			{Number: 1, Text: "10.0.0.1"},
			{Number: 2, Text: "10.0.0.2"},
		}))
	})

	It("reads empty input", func() {
		Expect(Read(strings.NewReader(""))).To(BeEmpty())
		Expect(Read(strings.NewReader("\n\n"))).To(BeEmpty())
	})

	It("reads files", func() {
		path := filepath.Join(GinkgoT().TempDir(), "targets.txt")
		Expect(os.WriteFile(path, []byte("10.0.0.1\n10.0.0.2\n"), 0o644)).To(Succeed())
		Expect(ReadFile(path)).To(HaveLen(2))
	})

	It("reports missing files", func() {
		_, err := ReadFile(filepath.Join(GinkgoT().TempDir(), "missing.txt"))
		Expect(err).To(MatchError(ErrFileNotFound))
	})

	It("reports unreadable files", func() {
		_, err := ReadFile(GinkgoT().TempDir())
		Expect(err).To(MatchError(ErrFileUnreadable))
	})

})
