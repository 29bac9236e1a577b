// Package zones tracks the screen regions of the last rendered frame. Regions
// are marked with bubblezone while rendering; after the frame is scanned they
// answer "what is under this cell" for hit-testing and drop-zone lookups.
package zones

import (
	"image"

	zone "github.com/lrstanley/bubblezone"

	"github.com/sandeepkv93/focusboard/internal/dnd"
)

// Manager is the subset of *zone.Manager the registry needs.
type Manager interface {
	Mark(id, v string) string
	Scan(v string) string
	Get(id string) *zone.ZoneInfo
}

type region struct {
	id     string
	parent string
	drop   *dnd.Zone
	order  int
}

type Registry struct {
	mgr     Manager
	prefix  string
	regions map[string]*region
	next    int
}

func New(mgr Manager, prefix string) *Registry {
	return &Registry{
		mgr:     mgr,
		prefix:  prefix,
		regions: make(map[string]*region),
	}
}

// NewManager returns a bubblezone manager for a Registry.
func NewManager() *zone.Manager {
	return zone.New()
}

// Reset forgets every region. Call it at the start of each frame.
func (r *Registry) Reset() {
	r.regions = make(map[string]*region)
	r.next = 0
}

// Element marks content as a plain region nested in parent ("" for none).
func (r *Registry) Element(id, parent, content string) string {
	r.add(id, parent, nil)
	return r.mgr.Mark(r.prefix+id, content)
}

// DropZone marks content as a region that accepts drops.
func (r *Registry) DropZone(id, parent string, z dnd.Zone, content string) string {
	zc := z
	r.add(id, parent, &zc)
	return r.mgr.Mark(r.prefix+id, content)
}

func (r *Registry) add(id, parent string, drop *dnd.Zone) {
	r.next++
	r.regions[id] = &region{id: id, parent: parent, drop: drop, order: r.next}
}

// Scan strips zone markers from a rendered frame and records positions.
// bubblezone stores positions on a worker goroutine, so Bounds and the hit
// tests see the new frame shortly after Scan returns, not immediately. Until
// then they answer from the previous frame, or not at all for new regions.
func (r *Registry) Scan(view string) string {
	return r.mgr.Scan(view)
}

// Bounds returns the region's last scanned rectangle. It reports false for
// regions not marked this frame and for positions bubblezone has not stored
// yet.
func (r *Registry) Bounds(id string) (image.Rectangle, bool) {
	if _, ok := r.regions[id]; !ok {
		return image.Rectangle{}, false
	}
	return r.bounds(id)
}

func (r *Registry) bounds(id string) (image.Rectangle, bool) {
	info := r.mgr.Get(r.prefix + id)
	if info == nil {
		return image.Rectangle{}, false
	}
	// bubblezone end coordinates are inclusive.
	return image.Rect(info.StartX, info.StartY, info.EndX+1, info.EndY+1), true
}

// ElementAt returns the innermost region containing p: the smallest one, with
// later-marked regions winning ties.
func (r *Registry) ElementAt(p image.Point) (string, bool) {
	var (
		best     *region
		bestArea int
	)
	for _, reg := range r.regions {
		rect, ok := r.bounds(reg.id)
		if !ok || !p.In(rect) {
			continue
		}
		area := rect.Dx() * rect.Dy()
		if best == nil || area < bestArea || (area == bestArea && reg.order > best.order) {
			best, bestArea = reg, area
		}
	}
	if best == nil {
		return "", false
	}
	return best.id, true
}

// DropZoneAt walks from the innermost region under p up through its parents
// to the first one that accepts drops.
func (r *Registry) DropZoneAt(p image.Point) (dnd.Zone, bool) {
	id, ok := r.ElementAt(p)
	if !ok {
		return dnd.Zone{}, false
	}
	seen := make(map[string]bool)
	for id != "" && !seen[id] {
		seen[id] = true
		reg, ok := r.regions[id]
		if !ok {
			break
		}
		if reg.drop != nil {
			return *reg.drop, true
		}
		id = reg.parent
	}
	return dnd.Zone{}, false
}
