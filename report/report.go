// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package report

import (
	"context"
	"sort"
	"sync"

	"github.com/siemens/fwdig/types"
)

// Map maps input line numbers to their corresponding host version
// information. A typical use case for a Map is to consume host version
// information from an event stream (channel) sending updates as hosts are
// submitted, queried, and finally found or not.
type Map struct {
	m  map[int]types.HostVersion
	mu sync.Mutex
}

// NewMap returns a new and properly initialized Map.
func NewMap() *Map {
	return &Map{
		m: map[int]types.HostVersion{},
	}
}

// Get returns all host versions from the map, ordered by their input line
// numbers.
func (m *Map) Get() []types.HostVersion {
	m.mu.Lock()
	defer m.mu.Unlock()
	hvs := make([]types.HostVersion, 0, len(m.m))
	for _, hv := range m.m {
		hvs = append(hvs, hv)
	}
	sort.Slice(hvs, func(a, b int) bool { return hvs[a].Line < hvs[b].Line })
	return hvs
}

// Update the map with a HostVersion, adding it in case it is yet unknown.
// Known hosts are updated only in case their quality moves forward, from
// unresolved to resolving and from resolving to a final verdict; final
// verdicts never change anymore. Reverse DNS names annotated earlier are kept.
func (m *Map) Update(hv types.HostVersion) {
	m.mu.Lock()
	defer m.mu.Unlock()
	known, ok := m.m[hv.Line]
	if !ok {
		m.m[hv.Line] = hv
		return
	}
	if !known.Quality.IsPending() || hv.Quality <= known.Quality {
		return
	}
	if len(hv.Names) == 0 {
		hv.Names = known.Names
	}
	m.m[hv.Line] = hv
}

// Annotate the host on the specified input line with its reverse DNS names.
// Annotations for unknown lines are silently ignored.
func (m *Map) Annotate(line int, names []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if hv, ok := m.m[line]; ok {
		m.m[line] = hv.WithNames(names)
	}
}

// Pending returns the number of hosts still lacking a final verdict.
func (m *Map) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	pending := 0
	for _, hv := range m.m {
		if hv.Quality.IsPending() {
			pending++
		}
	}
	return pending
}

// Track HostVersion updates received from the specified update channel until
// the channel is closed or the context done. Track only returns after
// processing all updates or when the context is done.
func (m *Map) Track(ctx context.Context, news <-chan types.HostVersion) error {
	for {
		select {
		case hv, ok := <-news:
			if !ok {
				return nil
			}
			m.Update(hv)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
