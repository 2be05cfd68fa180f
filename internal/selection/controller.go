// Package selection maintains the shared region selection that links the
// map view and the scatterplot view of the dashboard.
package selection

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ess-tools/atlas-cli/internal/model"
)

// Snapshot is the state handed to listeners and renderers after an event:
// the selected region names (sorted) and the filtered observation view
// derived from them. Both views read the same snapshot, so neither can show
// a region as selected that the other would not filter on.
type Snapshot struct {
	Selected []string            `json:"selected"`
	Filtered []model.Observation `json:"filtered"`
}

// RegionSummary is the per-region info line shown for the current
// selection: observation count and mean of the active variable.
type RegionSummary struct {
	Region string  `json:"region"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
}

// Listener receives the post-event snapshot. Listeners are invoked once per
// event, after the mutation has completed.
type Listener func(Snapshot)

// Controller owns the selection state. Events are serialized: each handler
// mutates the selection to completion under the lock before the next event
// is accepted, and the filtered view is always derived from the current
// selection rather than cached.
type Controller struct {
	mu        sync.Mutex
	obs       []model.Observation
	selected  map[string]bool
	listeners []Listener
}

// NewController creates a controller over an immutable observation set with
// an empty selection.
func NewController(obs []model.Observation) *Controller {
	return &Controller{
		obs:      obs,
		selected: make(map[string]bool),
	}
}

// Subscribe registers a listener for selection changes.
func (c *Controller) Subscribe(l Listener) {
	c.mu.Lock()
	c.listeners = append(c.listeners, l)
	c.mu.Unlock()
}

// ToggleRegion handles a map click. An empty selection becomes {region}; a
// click on an already-selected region removes it; any other click adds the
// region to the existing selection.
func (c *Controller) ToggleRegion(region string) Snapshot {
	c.mu.Lock()
	if c.selected[region] {
		delete(c.selected, region)
	} else {
		c.selected[region] = true
	}
	return c.finish()
}

// BrushPoints handles a scatterplot brush. The selection is replaced
// wholesale with the distinct region names of the brushed observation
// indices, resolved against the full observation set so repeating the same
// brush yields the same selection. An empty brush clears the selection.
// Out-of-range indices are ignored.
func (c *Controller) BrushPoints(indices []int) Snapshot {
	c.mu.Lock()
	next := make(map[string]bool)
	for _, idx := range indices {
		if idx < 0 || idx >= len(c.obs) {
			continue
		}
		next[c.obs[idx].Region] = true
	}
	c.selected = next
	return c.finish()
}

// ClickPoint handles a scatterplot point click. The selection is replaced
// with the single region of the clicked point, resolved against the
// currently filtered view. A stale index (out of bounds for the current
// view) is ignored and leaves the selection unchanged.
func (c *Controller) ClickPoint(index int) Snapshot {
	c.mu.Lock()
	filtered := c.filteredLocked()
	if index >= 0 && index < len(filtered) {
		c.selected = map[string]bool{filtered[index].Region: true}
	}
	return c.finish()
}

// Reset clears the selection unconditionally.
func (c *Controller) Reset() Snapshot {
	c.mu.Lock()
	c.selected = make(map[string]bool)
	return c.finish()
}

// Selected returns the selected region names, sorted.
func (c *Controller) Selected() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedLocked()
}

// Filtered returns the full observation set when the selection is empty,
// otherwise the observations whose region is selected, in original row
// order.
func (c *Controller) Filtered() []model.Observation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filteredLocked()
}

// Snapshot returns the current selection and filtered view.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Summaries returns one RegionSummary per selected region (all regions when
// the selection is empty), ordered by region name, with count and mean of
// the active variable over non-missing values.
func (c *Controller) Summaries(variable string) []RegionSummary {
	c.mu.Lock()
	defer c.mu.Unlock()

	type acc struct {
		sum float64
		n   int
	}
	byRegion := make(map[string]*acc)
	for _, o := range c.filteredLocked() {
		a := byRegion[o.Region]
		if a == nil {
			a = &acc{}
			byRegion[o.Region] = a
		}
		if v, ok := o.Value(variable); ok {
			a.sum += v
			a.n++
		}
	}

	regions := make([]string, 0, len(byRegion))
	for r := range byRegion {
		regions = append(regions, r)
	}
	sort.Strings(regions)

	out := make([]RegionSummary, 0, len(regions))
	for _, r := range regions {
		a := byRegion[r]
		s := RegionSummary{Region: r, Count: a.n}
		if a.n > 0 {
			s.Mean = a.sum / float64(a.n)
		}
		out = append(out, s)
	}
	return out
}

// SummaryText renders the selection summary for display: a single line for
// one region, one line per region plus a header for a multi-region
// selection, and a hint when nothing is selected.
func (c *Controller) SummaryText(variable, label string) string {
	selected := c.Selected()
	if len(selected) == 0 {
		return "No region selected; click the map or brush the scatterplot."
	}

	summaries := c.Summaries(variable)
	if len(selected) == 1 && len(summaries) == 1 {
		s := summaries[0]
		return fmt.Sprintf("%s: %d observations, mean %s %.2f", s.Region, s.Count, label, s.Mean)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d regions selected:\n", len(selected))
	for _, s := range summaries {
		fmt.Fprintf(&b, "  %s: %d observations, mean %s %.2f\n", s.Region, s.Count, label, s.Mean)
	}
	return b.String()
}

// finish builds the post-event snapshot, releases the lock, and notifies
// listeners. Called with the lock held.
func (c *Controller) finish() Snapshot {
	snap := c.snapshotLocked()
	listeners := make([]Listener, len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
	return snap
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Selected: c.selectedLocked(),
		Filtered: c.filteredLocked(),
	}
}

func (c *Controller) selectedLocked() []string {
	names := make([]string, 0, len(c.selected))
	for r := range c.selected {
		names = append(names, r)
	}
	sort.Strings(names)
	return names
}

func (c *Controller) filteredLocked() []model.Observation {
	return model.FilterByRegion(c.obs, c.selected)
}
