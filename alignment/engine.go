package alignment

import (
	"fmt"
	"time"

	"magnet/geometry"
	"magnet/spatial"
)

// Config tunes the alignment engine.
type Config struct {
	Threshold    float64       // snap distance in canvas units
	Curve        Curve         // magnetic falloff
	CacheTTL     time.Duration // how long a memoized check stays valid
	CacheSize    int           // maximum memoized checks
	SearchMargin float64       // how far beyond the viewport to look for candidates
}

// DefaultConfig returns the tuning used by the editor's drag handler.
func DefaultConfig() Config {
	return Config{
		Threshold:    8,
		Curve:        CurveQuadratic,
		CacheTTL:     100 * time.Millisecond,
		CacheSize:    1000,
		SearchMargin: 100,
	}
}

// Engine computes magnetically smoothed positions for dragged elements.
// It owns a spatial index over the current element set so per-frame
// checks only compare against nearby elements. Not safe for concurrent
// use; rebuilds must happen between drags, not during one.
type Engine struct {
	cfg      Config
	index    *spatial.Tree
	elements map[string]geometry.Element
	cache    *resultCache

	checks    int
	rebuilds  int
	checkTime time.Duration
}

// NewEngine creates an engine with the default configuration.
func NewEngine() *Engine {
	return NewEngineWithConfig(DefaultConfig())
}

// NewEngineWithConfig creates an engine with a custom configuration.
func NewEngineWithConfig(cfg Config) *Engine {
	return &Engine{
		cfg:      cfg,
		index:    spatial.New(),
		elements: make(map[string]geometry.Element),
		cache:    newResultCache(cfg.CacheTTL, cfg.CacheSize),
	}
}

// Index exposes the engine's spatial index for read-only queries.
func (e *Engine) Index() *spatial.Tree {
	return e.index
}

// UpdateElementIndex rebuilds the spatial index from the given element
// snapshots via bulk load. Rotated elements are indexed by the
// axis-aligned envelope of their rotated corners. Any memoized alignment
// results are invalidated.
func (e *Engine) UpdateElementIndex(elements []geometry.Element) {
	boxes := make([]geometry.Box, 0, len(elements))
	e.elements = make(map[string]geometry.Element, len(elements))
	for _, el := range elements {
		e.elements[el.ID] = el
		boxes = append(boxes, el.Box())
	}
	e.index.BulkLoad(boxes)
	e.cache.clear()
	e.rebuilds++
}

// Element returns the stored snapshot for an id, if present.
func (e *Engine) Element(id string) (geometry.Element, bool) {
	el, ok := e.elements[id]
	return el, ok
}

// Result is the outcome of a magnetic alignment check. X and Y are the
// exact snapped coordinates (equal to the proposed position on an axis
// that did not match); Smooth is the blended position the caller should
// render, which always lies between the proposed and snapped positions.
type Result struct {
	Aligned         bool
	X, Y            float64
	DeltaX, DeltaY  float64
	Strength        float64 // strongest axis pull, in [0, 1]
	Smooth          geometry.Point
	VerticalGuide   *GuideLine // matched x-axis guide, nil if none
	HorizontalGuide *GuideLine // matched y-axis guide, nil if none
}

// match is the position-independent part of an alignment check: which
// guides matched and the exact snapped coordinate per axis. Snapping a
// point onto a guide yields the same coordinate for every sub-pixel
// position that shares a cache key, so only the match is memoized;
// delta, strength and the smoothed blend are derived from the position
// actually passed in.
type match struct {
	hasV, hasH   bool
	snapX, snapY float64
	vGuide       GuideLine
	hGuide       GuideLine
}

// CheckMagneticAlignment measures the element's nine alignment points at
// the proposed position against every visible guide and returns the
// magnetically smoothed position. The two axes resolve independently:
// the closest vertical guide under the threshold attracts x and the
// closest horizontal guide attracts y, each blended by its own strength
// so motion stays continuous. The guide match is memoized on the element
// id and the whole-pixel position for a short TTL.
func (e *Engine) CheckMagneticAlignment(el geometry.Element, pos geometry.Point, guides []GuideLine) Result {
	start := time.Now()
	e.checks++
	defer func() { e.checkTime += time.Since(start) }()

	key := makeKey(el.ID, pos.X, pos.Y)
	if m, ok := e.cache.get(key); ok {
		return e.resolve(m, pos)
	}

	points := alignmentPoints(el, pos)

	bestV := -1 // index into guides of the closest vertical match
	bestH := -1
	bestVDist := e.cfg.Threshold
	bestHDist := e.cfg.Threshold
	var offsetX, offsetY float64

	for gi := range guides {
		g := &guides[gi]
		if !g.Visible {
			continue
		}
		for _, p := range points {
			switch g.Orientation {
			case geometry.Vertical:
				d := abs(p.X - g.Position)
				if d < bestVDist {
					bestV, bestVDist = gi, d
					offsetX = g.Position - p.X
				}
			case geometry.Horizontal:
				d := abs(p.Y - g.Position)
				if d < bestHDist {
					bestH, bestHDist = gi, d
					offsetY = g.Position - p.Y
				}
			}
		}
	}

	var m match
	if bestV >= 0 {
		m.hasV = true
		m.snapX = pos.X + offsetX
		m.vGuide = guides[bestV]
	}
	if bestH >= 0 {
		m.hasH = true
		m.snapY = pos.Y + offsetY
		m.hGuide = guides[bestH]
	}

	e.cache.put(key, m)
	return e.resolve(m, pos)
}

// resolve turns a guide match into a Result for the exact proposed
// position. Deriving delta, strength and the smoothed blend from the
// actual position keeps the smooth coordinate on the segment between
// proposed and snapped even when the match came from a neighboring
// sub-pixel position via the cache. A match whose distance has drifted
// to or past the threshold resolves to no snap on that axis. Matched
// guides are copied into the result so callers never share one.
func (e *Engine) resolve(m match, pos geometry.Point) Result {
	res := Result{
		X:      pos.X,
		Y:      pos.Y,
		Smooth: pos,
	}
	if m.hasV {
		if strength := Strength(abs(m.snapX-pos.X), e.cfg.Threshold, e.cfg.Curve); strength > 0 {
			res.Aligned = true
			res.X = m.snapX
			res.DeltaX = m.snapX - pos.X
			res.Smooth.X = geometry.Lerp(pos.X, m.snapX, strength)
			if strength > res.Strength {
				res.Strength = strength
			}
			g := m.vGuide
			res.VerticalGuide = &g
		}
	}
	if m.hasH {
		if strength := Strength(abs(m.snapY-pos.Y), e.cfg.Threshold, e.cfg.Curve); strength > 0 {
			res.Aligned = true
			res.Y = m.snapY
			res.DeltaY = m.snapY - pos.Y
			res.Smooth.Y = geometry.Lerp(pos.Y, m.snapY, strength)
			if strength > res.Strength {
				res.Strength = strength
			}
			g := m.hGuide
			res.HorizontalGuide = &g
		}
	}
	return res
}

// ClearCache drops all memoized alignment results.
func (e *Engine) ClearCache() {
	e.cache.clear()
}

// Stats reports the engine's running performance counters. They are
// informational only and carry no correctness contract.
type Stats struct {
	Checks       int
	Rebuilds     int
	CacheHits    int
	CacheMisses  int
	CacheHitRate float64
	AvgCheckTime time.Duration
}

// Stats returns a snapshot of the performance counters.
func (e *Engine) Stats() Stats {
	s := Stats{
		Checks:       e.checks,
		Rebuilds:     e.rebuilds,
		CacheHits:    e.cache.hits,
		CacheMisses:  e.cache.misses,
		CacheHitRate: e.cache.hitRate(),
	}
	if e.checks > 0 {
		s.AvgCheckTime = e.checkTime / time.Duration(e.checks)
	}
	return s
}

// String returns a one-line summary of the engine's counters.
func (e *Engine) String() string {
	s := e.Stats()
	return fmt.Sprintf("Engine[checks=%d, rebuilds=%d, hitRate=%.1f%%, avgCheck=%s, %s]",
		s.Checks, s.Rebuilds, s.CacheHitRate*100, s.AvgCheckTime, e.index)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
