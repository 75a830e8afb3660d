// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/siemens/fwdig/addr"
	"github.com/siemens/fwdig/extract"
	"github.com/siemens/fwdig/ping"
	"github.com/siemens/fwdig/rdns"
	"github.com/siemens/fwdig/report"
	"github.com/siemens/fwdig/resolver"
	"github.com/siemens/fwdig/targets"
	"github.com/siemens/fwdig/types"

	"github.com/gosuri/uilive"
	"github.com/miekg/dns"
	"github.com/thediveo/lxkns/log"
)

// QueryAndReport reads the target addresses from the file at path, validates
// them, and then queries the valid hosts for their firmware versions. Finally,
// it renders one report line per input line to w. Hosts that couldn't be
// queried before an interrupt or the overall deadline are reported as not
// resolved.
func QueryAndReport(ctx context.Context, w io.Writer, path string) error {
	lines, err := targets.ReadFile(path)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()
	if *deadline > 0 {
		var cancelDeadline context.CancelFunc
		ctx, cancelDeadline = context.WithTimeout(ctx, *deadline)
		defer cancelDeadline()
	}

	// Invalid lines get their final verdict right away, while valid hosts
	// enter the map as unresolved, so that the map knows all hosts before any
	// updates and reverse DNS annotations arrive.
	hosts := report.NewMap()
	valid := validate(lines, hosts)

	extractor, err := extract.ByNames(*extractors)
	if err != nil {
		return err
	}
	var lookups *rdns.DnsPool
	if *dnsResolver != "" {
		lookups, err = rdns.New(ctx, int(*workerNumber),
			&dns.Client{Timeout: *timeout}, *dnsResolver)
		if err != nil {
			return fmt.Errorf("cannot connect to DNS resolver %s: %w", *dnsResolver, err)
		}
	}

	// Now lets put the required processing elements and their plumbing in
	// place.
	//
	//   - Resolver consuming the valid hosts and querying them, producing
	//     "verdicts".
	//   - report.Map consuming these "verdicts".
	//
	// Rendering is done on the information collected by the report.Map.
	resolver, news := resolver.New(int(*workerNumber), resolverOptions(extractor)...)
	trackingDone := make(chan struct{})
	go func() {
		_ = hosts.Track(ctx, news)
		close(trackingDone)
	}()
	feedingDone := make(chan struct{})
	go func() {
		defer close(feedingDone)
		for _, hv := range valid {
			resolver.Query(ctx, hv)
			if lookups != nil {
				line, address := hv.Line, hv.Address
				lookups.LookupPTR(ctx, address, func(names []string, err error) {
					if err != nil {
						log.Debugf("reverse lookup of %s failed: %s", address, err.Error())
						return
					}
					hosts.Annotate(line, names)
				})
			}
		}
		resolver.StopWait()
		if lookups != nil {
			lookups.StopWait()
		}
	}()

	done := make(chan struct{})
	go func() {
		<-trackingDone
		<-feedingDone
		close(done)
	}()

	renderer := newRenderer(w, *quiet)
	if *live {
		renderLive(renderer, hosts, done)
	} else {
		<-done
		renderer.Render(hosts.Get())
	}
	if ctx.Err() != nil {
		log.Debugf("querying stopped early: %s", ctx.Err().Error())
	}
	return nil
}

// validate the target lines, returning the valid hosts as unresolved host
// versions. All hosts, valid or invalid, are also added to the report map.
func validate(lines []targets.Line, hosts *report.Map) []types.HostVersion {
	var opts []addr.Option
	if *strictCIDR {
		opts = append(opts, addr.StrictSubnetting())
	}
	valid := make([]types.HostVersion, 0, len(lines))
	for _, line := range lines {
		hv := types.HostVersion{
			Line:   line.Number,
			Text:   line.Text,
			Prefix: -1,
		}
		a, err := addr.Validate(line.Text, opts...)
		if err != nil {
			log.Debugf("line %d: %s", line.Number, err.Error())
			hosts.Update(hv.WithQuality(types.Invalid, "", "", err))
			continue
		}
		hv.Address = a.Bare()
		hv.Family = a.Family
		if a.HasPrefix {
			hv.Prefix = a.Prefix
		}
		hosts.Update(hv)
		valid = append(valid, hv)
	}
	return valid
}

// resolverOptions returns the resolver options corresponding with the CLI
// flags.
func resolverOptions(extractor extract.Extractor) []resolver.ResolverOption {
	opts := []resolver.ResolverOption{
		resolver.WithTimeout(*timeout),
		resolver.WithExtractor(extractor),
	}
	if *httpFirst {
		opts = append(opts, resolver.WithSchemeOrder("http", "https"))
	}
	if *insecure {
		opts = append(opts, resolver.WithInsecure())
	}
	if *pingCheck {
		var pingopts []ping.CheckerOption
		if os.Geteuid() != 0 {
			pingopts = append(pingopts, ping.AsUnprivileged())
		}
		opts = append(opts, resolver.WithPrecheck(ping.New(pingopts...).Check))
	}
	return append(opts, extraResolverOptions...)
}

// For CLI unit tests...
var extraResolverOptions []resolver.ResolverOption

// renderLive keeps rendering the current host versions until done gets
// closed, and then renders the final report in place of the live display.
//
// Dunno what uilive's background updating mode using Start() is good for? It
// may trigger anytime with the rendering into the buffer not yet complete, thus
// making the terminal output very flickery. So we avoid Start() and instead
// trigger an explicit flush to the terminal after having completed the
// rendering.
func renderLive(r *renderer, hosts *report.Map, done <-chan struct{}) {
	term := uilive.New()
	term.Out = r.w
	sp := newSpinner()
	sp.Start(*spinnerInterval)
	r.w = term
	r.spinner = sp
	defer func() {
		sp.Stop()
		r.spinner = nil
		r.Render(hosts.Get())
		_ = term.Flush()
	}()
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	for {
		r.Render(hosts.Get())
		_ = term.Flush()
		select {
		case <-ticker.C:
		case <-done:
			return
		}
	}
}
