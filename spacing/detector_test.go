package spacing

import (
	"math"
	"testing"

	"magnet/geometry"
)

func row(xs []float64, width, height float64) []geometry.Box {
	boxes := make([]geometry.Box, len(xs))
	for i, x := range xs {
		boxes[i] = geometry.Box{
			ID:   string(rune('A' + i)),
			Rect: geometry.NewRect(x, 0, width, height),
		}
	}
	return boxes
}

func TestAnalyzeSpacingEqualRow(t *testing.T) {
	boxes := row([]float64{0, 70, 140, 210}, 50, 50)

	a := NewDetector().AnalyzeSpacing(boxes)
	if len(a.Horizontal) != 1 {
		t.Fatalf("horizontal patterns = %d, want 1\n%+v", len(a.Horizontal), a.Horizontal)
	}
	p := a.Horizontal[0]
	if p.Spacing != 20 || p.Count != 3 {
		t.Errorf("pattern spacing=%v count=%d, want spacing=20 count=3", p.Spacing, p.Count)
	}
	if !p.Primary {
		t.Error("the only pattern should be primary")
	}
	if p.Confidence != 1 {
		t.Errorf("uniform gaps confidence = %v, want 1", p.Confidence)
	}
	if len(p.Pairs) != 3 || p.Pairs[0] != [2]string{"A", "B"} {
		t.Errorf("pairs = %v", p.Pairs)
	}
	if len(a.Suggestions) == 0 {
		t.Fatal("expected a suggestion for the primary pattern")
	}
	if a.Suggestions[0].Axis != geometry.Horizontal || a.Suggestions[0].Spacing != 20 {
		t.Errorf("top suggestion = %+v", a.Suggestions[0])
	}
}

func TestAnalyzeSpacingToleranceClustering(t *testing.T) {
	// Gaps of 20, 21 and 19.5 cluster into one pattern under the 2px
	// tolerance; the 60 gap stands alone and is dropped (size 1).
	boxes := row([]float64{0, 70, 141, 210.5, 320.5}, 50, 50)

	a := NewDetector().AnalyzeSpacing(boxes)
	if len(a.Horizontal) != 1 {
		t.Fatalf("horizontal patterns = %d, want 1\n%+v", len(a.Horizontal), a.Horizontal)
	}
	p := a.Horizontal[0]
	if p.Count != 3 {
		t.Errorf("clustered count = %d, want 3", p.Count)
	}
	if p.Confidence <= 0.9 || p.Confidence >= 1 {
		t.Errorf("near-uniform gaps confidence = %v, want just under 1", p.Confidence)
	}
}

func TestAnalyzeSpacingIgnoresOverlaps(t *testing.T) {
	// B overlaps A; the only usable gaps are B-C and C-D.
	boxes := row([]float64{0, 30, 130, 230}, 50, 50)

	a := NewDetector().AnalyzeSpacing(boxes)
	if len(a.Horizontal) != 1 {
		t.Fatalf("horizontal patterns = %d, want 1\n%+v", len(a.Horizontal), a.Horizontal)
	}
	if p := a.Horizontal[0]; p.Count != 2 || p.Spacing != 50 {
		t.Errorf("pattern = %+v, want count=2 spacing=50", p)
	}
}

func TestAnalyzeSpacingVertical(t *testing.T) {
	boxes := []geometry.Box{
		{ID: "a", Rect: geometry.NewRect(0, 0, 50, 30)},
		{ID: "b", Rect: geometry.NewRect(0, 40, 50, 30)},
		{ID: "c", Rect: geometry.NewRect(0, 80, 50, 30)},
	}
	a := NewDetector().AnalyzeSpacing(boxes)
	if len(a.Vertical) != 1 {
		t.Fatalf("vertical patterns = %d, want 1", len(a.Vertical))
	}
	if p := a.Vertical[0]; p.Spacing != 10 || p.Count != 2 {
		t.Errorf("pattern = %+v, want spacing=10 count=2", p)
	}
}

func TestDetectAlignmentGroups(t *testing.T) {
	// a, b, c share their top edge; d is offset.
	boxes := []geometry.Box{
		{ID: "a", Rect: geometry.NewRect(0, 100, 50, 50)},
		{ID: "b", Rect: geometry.NewRect(100, 101, 50, 30)},
		{ID: "c", Rect: geometry.NewRect(200, 99, 50, 80)},
		{ID: "d", Rect: geometry.NewRect(300, 300, 50, 50)},
	}

	groups := NewDetector().DetectAlignmentGroups(boxes)
	var topGroup *Group
	for i := range groups {
		if groups[i].Axis == geometry.Horizontal && groups[i].Anchor == geometry.AnchorStart {
			topGroup = &groups[i]
		}
	}
	if topGroup == nil {
		t.Fatalf("no top-edge group found in %+v", groups)
	}
	if len(topGroup.IDs) != 3 {
		t.Errorf("top-edge group ids = %v, want [a b c]", topGroup.IDs)
	}
	if math.Abs(topGroup.Position-100) > 1 {
		t.Errorf("group position = %v, want ~100", topGroup.Position)
	}
}

func TestDetectAlignmentGroupsRespectsMinSize(t *testing.T) {
	boxes := []geometry.Box{
		{ID: "a", Rect: geometry.NewRect(0, 100, 50, 50)},
		{ID: "b", Rect: geometry.NewRect(100, 100, 50, 50)},
	}
	if groups := NewDetector().DetectAlignmentGroups(boxes); len(groups) != 0 {
		t.Errorf("two boxes formed groups: %+v", groups)
	}
}

func TestDetectGridLayout3x3(t *testing.T) {
	var boxes []geometry.Box
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			boxes = append(boxes, geometry.Box{
				ID:   string(rune('a' + r*3 + c)),
				Rect: geometry.NewRect(float64(c*100), float64(r*100), 50, 50),
			})
		}
	}

	grid, ok := NewDetector().DetectGridLayout(boxes)
	if !ok {
		t.Fatal("3x3 grid not detected")
	}
	if grid.Rows != 3 || grid.Cols != 3 {
		t.Errorf("grid = %dx%d, want 3x3", grid.Rows, grid.Cols)
	}
	if len(grid.IDs) != 9 {
		t.Errorf("grid members = %v, want all 9", grid.IDs)
	}
	if cell := grid.Cells["e"]; cell != (Cell{Row: 1, Col: 1}) {
		t.Errorf("center box cell = %+v, want {1 1}", cell)
	}
}

func TestDetectGridLayoutRejectsLine(t *testing.T) {
	// A single row has only one y line, so it is not a grid.
	boxes := row([]float64{0, 100, 200, 300}, 50, 50)
	if _, ok := NewDetector().DetectGridLayout(boxes); ok {
		t.Error("single row detected as grid")
	}
}

func TestDetectGridLayoutSparse(t *testing.T) {
	// Two complete rows of a 2x3 grid minus two cells: 4 of 6 filled
	// (>= 50%), still a grid.
	boxes := []geometry.Box{
		{ID: "a", Rect: geometry.NewRect(0, 0, 50, 50)},
		{ID: "b", Rect: geometry.NewRect(100, 0, 50, 50)},
		{ID: "c", Rect: geometry.NewRect(200, 0, 50, 50)},
		{ID: "d", Rect: geometry.NewRect(0, 100, 50, 50)},
	}
	grid, ok := NewDetector().DetectGridLayout(boxes)
	if !ok {
		t.Fatal("4/6 filled grid not detected")
	}
	if grid.Rows != 2 || grid.Cols != 3 {
		t.Errorf("grid = %dx%d, want 2x3", grid.Rows, grid.Cols)
	}
}

func TestDistributeExplicitSpacing(t *testing.T) {
	boxes := []geometry.Box{
		{ID: "A", Rect: geometry.NewRect(0, 0, 50, 50)},
		{ID: "B", Rect: geometry.NewRect(70, 0, 50, 50)},
		{ID: "C", Rect: geometry.NewRect(150, 0, 50, 50)},
	}

	got := DistributeBy(boxes, geometry.Horizontal, 50)
	want := []Placement{{ID: "B", Position: 100}, {ID: "C", Position: 200}}
	if len(got) != len(want) {
		t.Fatalf("placements = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("placement[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDistributeDerivedSpacing(t *testing.T) {
	// Span 0..200, extents 3*50 -> leftover 50 over 2 gaps = 25 each.
	boxes := []geometry.Box{
		{ID: "A", Rect: geometry.NewRect(0, 0, 50, 50)},
		{ID: "B", Rect: geometry.NewRect(70, 0, 50, 50)},
		{ID: "C", Rect: geometry.NewRect(150, 0, 50, 50)},
	}
	got := Distribute(boxes, geometry.Horizontal)
	want := []Placement{{ID: "B", Position: 75}, {ID: "C", Position: 150}}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("placement[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDistributeTooFewBoxes(t *testing.T) {
	boxes := []geometry.Box{{ID: "A", Rect: geometry.NewRect(0, 0, 50, 50)}}
	if got := Distribute(boxes, geometry.Horizontal); got != nil {
		t.Errorf("single box distributed: %+v", got)
	}
}

func TestAlignTops(t *testing.T) {
	boxes := []geometry.Box{
		{ID: "a", Rect: geometry.NewRect(0, 10, 50, 50)},
		{ID: "b", Rect: geometry.NewRect(100, 20, 50, 20)},
		{ID: "c", Rect: geometry.NewRect(200, 30, 50, 80)},
	}

	got := Align(boxes, geometry.Horizontal, geometry.AnchorStart)
	for _, p := range got {
		if p.Position != 20 {
			t.Errorf("%s top = %v, want mean 20", p.ID, p.Position)
		}
	}
}

func TestAlignVerticalCenters(t *testing.T) {
	// Centers at x = 25, 125, 225 -> mean 125. Each box's new left edge
	// puts its center there.
	boxes := []geometry.Box{
		{ID: "a", Rect: geometry.NewRect(0, 0, 50, 50)},
		{ID: "b", Rect: geometry.NewRect(100, 100, 50, 50)},
		{ID: "c", Rect: geometry.NewRect(200, 200, 50, 50)},
	}
	got := Align(boxes, geometry.Vertical, geometry.AnchorCenter)
	for _, p := range got {
		if p.Position != 100 {
			t.Errorf("%s left = %v, want 100", p.ID, p.Position)
		}
	}
}

func TestAlignEnd(t *testing.T) {
	// Rights at 50, 160 and 270 -> mean 160.
	boxes := []geometry.Box{
		{ID: "a", Rect: geometry.NewRect(0, 0, 50, 50)},
		{ID: "b", Rect: geometry.NewRect(100, 0, 60, 50)},
		{ID: "c", Rect: geometry.NewRect(200, 0, 70, 50)},
	}
	got := Align(boxes, geometry.Vertical, geometry.AnchorEnd)
	wantLefts := map[string]float64{"a": 110, "b": 100, "c": 90}
	for _, p := range got {
		if p.Position != wantLefts[p.ID] {
			t.Errorf("%s left = %v, want %v", p.ID, p.Position, wantLefts[p.ID])
		}
	}
}
