package spatial

import (
	"math"
	"sort"

	"magnet/geometry"
)

// BulkLoad discards the current contents and rebuilds the tree from the
// given boxes using Sort-Tile-Recursive packing: items are sorted by
// center x, cut into vertical slices, sorted by center y within each
// slice and chunked into full leaves. Parent levels are packed the same
// way bottom-up, so the result is height-balanced without any node
// splitting. Duplicate ids keep their last occurrence.
//
// Use this for full document re-syncs; incremental edits should go
// through Insert, Update and Remove.
func (t *Tree) BulkLoad(items []geometry.Box) {
	t.Clear()
	if len(items) == 0 {
		return
	}

	// Last occurrence wins for duplicate ids.
	seen := make(map[string]int, len(items))
	unique := make([]geometry.Box, 0, len(items))
	for _, item := range items {
		item.Rect = normalize(item.Rect)
		if i, ok := seen[item.ID]; ok {
			unique[i] = item
			continue
		}
		seen[item.ID] = len(unique)
		unique = append(unique, item)
	}

	level := t.packLeaves(unique)
	for len(level) > 1 {
		level = t.packLevel(level)
	}
	t.root = level[0]
	t.nodes[t.root].parent = noNode
}

// packLeaves tiles the items into leaf nodes and returns their handles.
func (t *Tree) packLeaves(items []geometry.Box) []int32 {
	sort.Slice(items, func(i, j int) bool {
		return items[i].Rect.CenterX() < items[j].Rect.CenterX()
	})

	var leaves []int32
	for _, slice := range verticalSlices(len(items), t.cfg.MaxEntries) {
		tile := items[slice[0]:slice[1]]
		sort.Slice(tile, func(i, j int) bool {
			return tile[i].Rect.CenterY() < tile[j].Rect.CenterY()
		})

		for start := 0; start < len(tile); start += t.cfg.MaxEntries {
			end := min(start+t.cfg.MaxEntries, len(tile))
			entries := make([]entry, 0, end-start)
			for _, box := range tile[start:end] {
				entries = append(entries, entry{rect: box.Rect, id: box.ID})
			}
			leaf := t.alloc(node{leaf: true, height: 1, parent: noNode, entries: entries})
			for _, box := range tile[start:end] {
				t.leaves[box.ID] = leaf
			}
			leaves = append(leaves, leaf)
		}
	}
	return leaves
}

// packLevel tiles a level of nodes into parents one level up.
func (t *Tree) packLevel(children []int32) []int32 {
	type handleBox struct {
		handle int32
		rect   geometry.Rect
	}
	boxes := make([]handleBox, len(children))
	for i, h := range children {
		boxes[i] = handleBox{handle: h, rect: t.nodeBounds(h)}
	}
	sort.Slice(boxes, func(i, j int) bool {
		return boxes[i].rect.CenterX() < boxes[j].rect.CenterX()
	})

	height := t.nodes[children[0]].height + 1

	var parents []int32
	for _, slice := range verticalSlices(len(boxes), t.cfg.MaxEntries) {
		tile := boxes[slice[0]:slice[1]]
		sort.Slice(tile, func(i, j int) bool {
			return tile[i].rect.CenterY() < tile[j].rect.CenterY()
		})

		for start := 0; start < len(tile); start += t.cfg.MaxEntries {
			end := min(start+t.cfg.MaxEntries, len(tile))
			entries := make([]entry, 0, end-start)
			for _, hb := range tile[start:end] {
				entries = append(entries, entry{rect: hb.rect, child: hb.handle})
			}
			parent := t.alloc(node{leaf: false, height: height, parent: noNode, entries: entries})
			for _, hb := range tile[start:end] {
				t.nodes[hb.handle].parent = parent
			}
			parents = append(parents, parent)
		}
	}
	return parents
}

// verticalSlices cuts n sorted items into ceil(sqrt(ceil(n/capacity)))
// slices and returns the [start, end) range of each.
func verticalSlices(n, capacity int) [][2]int {
	leafCount := (n + capacity - 1) / capacity
	sliceCount := int(math.Ceil(math.Sqrt(float64(leafCount))))
	if sliceCount < 1 {
		sliceCount = 1
	}
	sliceSize := (n + sliceCount - 1) / sliceCount

	var out [][2]int
	for start := 0; start < n; start += sliceSize {
		out = append(out, [2]int{start, min(start+sliceSize, n)})
	}
	return out
}
