package spacing

import (
	"math"
	"sort"

	"magnet/geometry"
)

// Cell addresses a grid position by row and column, both 0-based.
type Cell struct {
	Row, Col int
}

// Grid describes a detected grid arrangement: the alignment lines per
// axis and the cell each box was assigned to.
type Grid struct {
	Rows, Cols int
	RowLines   []float64 // y coordinates of the row center lines, ascending
	ColLines   []float64 // x coordinates of the column center lines, ascending
	Cells      map[string]Cell
	IDs        []string // member ids, sorted
}

// gridLineToleranceFactor widens the clustering tolerance for grid
// lines: element centers scatter more than intentional gaps do.
const gridLineToleranceFactor = 3

// DetectGridLayout checks whether the boxes form a grid. The boxes'
// center x and y coordinates are clustered independently into alignment
// lines; each box is assigned to the nearest (row, column) cell. The
// arrangement counts as a grid when at least half of the cells are
// filled, or when the filled cells form complete rows or complete
// columns. Requires at least 4 boxes and 2 distinct lines per axis.
func (d *Detector) DetectGridLayout(boxes []geometry.Box) (Grid, bool) {
	if len(boxes) < 4 {
		return Grid{}, false
	}

	tolerance := d.Tolerance * gridLineToleranceFactor
	xs := make([]float64, len(boxes))
	ys := make([]float64, len(boxes))
	for i, b := range boxes {
		xs[i] = b.Rect.CenterX()
		ys[i] = b.Rect.CenterY()
	}
	colLines := clusterLines(xs, tolerance)
	rowLines := clusterLines(ys, tolerance)
	if len(colLines) < 2 || len(rowLines) < 2 {
		return Grid{}, false
	}

	grid := Grid{
		Rows:     len(rowLines),
		Cols:     len(colLines),
		RowLines: rowLines,
		ColLines: colLines,
		Cells:    make(map[string]Cell, len(boxes)),
	}
	filled := make(map[Cell]bool)
	for _, b := range boxes {
		cell := Cell{
			Row: nearestLine(rowLines, b.Rect.CenterY()),
			Col: nearestLine(colLines, b.Rect.CenterX()),
		}
		grid.Cells[b.ID] = cell
		grid.IDs = append(grid.IDs, b.ID)
		filled[cell] = true
	}
	sort.Strings(grid.IDs)

	ratio := float64(len(filled)) / float64(grid.Rows*grid.Cols)
	if ratio >= 0.5 || completeLines(filled, grid.Rows, grid.Cols) {
		return grid, true
	}
	return Grid{}, false
}

// clusterLines groups sorted 1-D values whose consecutive gaps stay
// within the tolerance and returns the mean of each cluster.
func clusterLines(values []float64, tolerance float64) []float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	var lines []float64
	var cluster []float64
	flush := func() {
		if len(cluster) > 0 {
			lines = append(lines, geometry.Mean(cluster))
			cluster = cluster[:0]
		}
	}
	for i, v := range sorted {
		if i > 0 && v-sorted[i-1] > tolerance {
			flush()
		}
		cluster = append(cluster, v)
	}
	flush()
	return lines
}

// nearestLine returns the index of the line closest to v.
func nearestLine(lines []float64, v float64) int {
	best := 0
	bestDist := math.Abs(v - lines[0])
	for i, line := range lines[1:] {
		if d := math.Abs(v - line); d < bestDist {
			best, bestDist = i+1, d
		}
	}
	return best
}

// completeLines reports whether the filled cells form complete rows or
// complete columns: every row that is occupied at all is fully occupied,
// or likewise for columns.
func completeLines(filled map[Cell]bool, rows, cols int) bool {
	rowCounts := make([]int, rows)
	colCounts := make([]int, cols)
	for cell := range filled {
		rowCounts[cell.Row]++
		colCounts[cell.Col]++
	}

	completeRows := true
	for _, c := range rowCounts {
		if c != 0 && c != cols {
			completeRows = false
			break
		}
	}
	if completeRows {
		return true
	}
	for _, c := range colCounts {
		if c != 0 && c != rows {
			return false
		}
	}
	return true
}
