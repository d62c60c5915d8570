package sketch

import (
	"fmt"
	"image/color"
	"math"
	"time"
)

type ColorStop struct {
	T     float64
	Color color.NRGBA
}

// HeatmapWidget renders a 2D value matrix as colored cells. Zoom and
// pan only change which sub rectangle of the matrix is visible; the
// color mapping always spans the full [min,max] of the data.
type HeatmapWidget struct {
	Chart

	Style HeatmapStyle

	data [][]float64
	rows []string
	cols []string
	min  float64
	max  float64

	stops []ColorStop

	clusterOn bool
	threshold float64
	clusters  [][]int
	stale     bool

	startRow   int
	startCol   int
	zoomFactor float64

	dataGen uint64

	gridArea Rect
	cellW    float64
	cellH    float64

	OnCellClicked func(row, col int)
}

func NewHeatmapWidget(theme Theme) *HeatmapWidget {
	c := HeatmapWidget{
		Chart:      newChart(theme),
		Style:      DefaultHeatmapStyle(),
		zoomFactor: 1,
	}
	c.X.Visible = false
	c.Y.Visible = false
	c.Legend.Show = false
	c.plot = &c
	c.OnPointClicked = func(serie, point int) {
		if c.OnCellClicked != nil {
			c.OnCellClicked(serie, point)
		}
	}
	return &c
}

func (c *HeatmapWidget) Rows() int {
	return len(c.data)
}

func (c *HeatmapWidget) Cols() int {
	if len(c.data) == 0 {
		return 0
	}
	return len(c.data[0])
}

// DataGen is the cache invalidation token for rendered heatmap
// bitmaps: it moves on every data mutation. Caching is optional; a
// host that repaints every frame can ignore it. A host that does cache
// must also rerender while the chart is animating or after a resize
// (BackgroundGen).
func (c *HeatmapWidget) DataGen() uint64 {
	return c.dataGen
}

func (c *HeatmapWidget) SetData(matrix [][]float64, rowLabels, colLabels []string) {
	c.data = normalizeMatrix(matrix)
	c.rows = rowLabels
	c.cols = colLabels
	c.rescan()
	c.startRow, c.startCol = 0, 0
	c.zoomFactor = 1
	c.stale = true
	c.dataGen++
	c.dataChanged()
}

// normalizeMatrix copies the matrix, padding short rows with zeros so
// every row shares the widest row's width.
func normalizeMatrix(matrix [][]float64) [][]float64 {
	var width int
	for _, row := range matrix {
		if len(row) > width {
			width = len(row)
		}
	}
	if width == 0 {
		return nil
	}
	out := make([][]float64, len(matrix))
	for i, row := range matrix {
		out[i] = make([]float64, width)
		copy(out[i], row)
	}
	return out
}

func (c *HeatmapWidget) SetValueAt(row, col int, v float64) {
	if row < 0 || row >= c.Rows() || col < 0 || col >= c.Cols() {
		return
	}
	c.data[row][col] = v
	c.rescan()
	c.stale = true
	c.dataGen++
	c.state = HasData
}

func (c *HeatmapWidget) ValueAt(row, col int) (float64, bool) {
	if row < 0 || row >= c.Rows() || col < 0 || col >= c.Cols() {
		return 0, false
	}
	return c.data[row][col], true
}

func (c *HeatmapWidget) rescan() {
	first := true
	for _, row := range c.data {
		for _, v := range row {
			if first {
				c.min, c.max = v, v
				first = false
				continue
			}
			c.min = math.Min(c.min, v)
			c.max = math.Max(c.max, v)
		}
	}
	if first {
		c.min, c.max = 0, 1
	}
}

// SetColorStops installs a custom piecewise linear gradient; stops are
// sorted positions in [0,1]. An empty slice falls back to the built in
// palette.
func (c *HeatmapWidget) SetColorStops(stops []ColorStop) {
	c.stops = stops
	c.dataGen++
}

// ValueToColor maps a value across [min,max] onto the active gradient.
func (c *HeatmapWidget) ValueToColor(v float64) color.NRGBA {
	var t float64
	if c.max > c.min {
		t = (v - c.min) / (c.max - c.min)
	} else {
		t = 0.5
	}
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	if len(c.stops) == 0 {
		return c.Style.Map.Stops().At(t)
	}
	if t <= c.stops[0].T {
		return c.stops[0].Color
	}
	for i := 1; i < len(c.stops); i++ {
		if t <= c.stops[i].T {
			var (
				lo   = c.stops[i-1]
				hi   = c.stops[i]
				span = hi.T - lo.T
			)
			if span <= 0 {
				return hi.Color
			}
			return LerpColor(lo.Color, hi.Color, (t-lo.T)/span)
		}
	}
	return c.stops[len(c.stops)-1].Color
}

// EnableClustering turns flood fill clustering on with the given value
// similarity threshold; the partition is recomputed lazily.
func (c *HeatmapWidget) EnableClustering(threshold float64) {
	c.clusterOn = true
	c.threshold = threshold
	c.stale = true
}

func (c *HeatmapWidget) DisableClustering() {
	c.clusterOn = false
	c.clusters = nil
}

func (c *HeatmapWidget) SetClusterThreshold(threshold float64) {
	if threshold == c.threshold {
		return
	}
	c.threshold = threshold
	c.stale = true
}

// Clusters returns the partition of all cell indices (row*cols+col)
// into 4-connected groups of similar values, recomputing it if the
// data or threshold changed since the last call.
func (c *HeatmapWidget) Clusters() [][]int {
	if !c.clusterOn {
		return nil
	}
	if c.stale {
		c.clusters = c.performClustering()
		c.stale = false
	}
	return c.clusters
}

// performClustering flood fills the grid: a neighbor joins the current
// cluster when its value differs from the cell being expanded by no
// more than the threshold. Every cell lands in exactly one cluster.
func (c *HeatmapWidget) performClustering() [][]int {
	var (
		rows = c.Rows()
		cols = c.Cols()
	)
	if rows == 0 || cols == 0 {
		return nil
	}
	var (
		seen = make([]bool, rows*cols)
		out  [][]int
	)
	for r := 0; r < rows; r++ {
		for col := 0; col < cols; col++ {
			ix := r*cols + col
			if seen[ix] {
				continue
			}
			var (
				cluster []int
				queue   = []int{ix}
			)
			seen[ix] = true
			for len(queue) > 0 {
				cur := queue[0]
				queue = queue[1:]
				cluster = append(cluster, cur)
				var (
					cr = cur / cols
					cc = cur % cols
					cv = c.data[cr][cc]
				)
				for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
					var (
						nr = cr + d[0]
						nc = cc + d[1]
					)
					if nr < 0 || nr >= rows || nc < 0 || nc >= cols {
						continue
					}
					nx := nr*cols + nc
					if seen[nx] {
						continue
					}
					if math.Abs(c.data[nr][nc]-cv) > c.threshold {
						continue
					}
					seen[nx] = true
					queue = append(queue, nx)
				}
			}
			out = append(out, cluster)
		}
	}
	return out
}

// Visible reports the viewport: first row/col and how many of each are
// rendered at the current zoom.
func (c *HeatmapWidget) Visible() (startRow, startCol, visRows, visCols int) {
	var (
		rows = c.Rows()
		cols = c.Cols()
	)
	if rows == 0 || cols == 0 {
		return 0, 0, 0, 0
	}
	visRows = int(math.Ceil(float64(rows) / c.zoomFactor))
	visCols = int(math.Ceil(float64(cols) / c.zoomFactor))
	visRows = clampInt(visRows, 1, rows)
	visCols = clampInt(visCols, 1, cols)
	startRow = clampInt(c.startRow, 0, rows-visRows)
	startCol = clampInt(c.startCol, 0, cols-visCols)
	return startRow, startCol, visRows, visCols
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Wheel zooms the viewport instead of scaling the canvas: the color
// mapping and cell geometry stay crisp, only fewer cells show.
func (c *HeatmapWidget) Wheel(dy float64) {
	switch {
	case dy > 0:
		c.zoomFactor *= zoomStep
	case dy < 0:
		c.zoomFactor /= zoomStep
	}
	if c.zoomFactor < 1 {
		c.zoomFactor = 1
	}
	if c.zoomFactor > maxZoom {
		c.zoomFactor = maxZoom
	}
}

func (c *HeatmapWidget) DoubleClick(p Pos) {
	c.zoomFactor = 1
	c.startRow, c.startCol = 0, 0
}

// Move pans the viewport by whole cells while the left button is held.
func (c *HeatmapWidget) Move(p Pos) {
	if c.pressed && !c.selecting && c.cellW > 0 && c.cellH > 0 {
		if Distance(p, c.pressAt) > clickSlop {
			c.moved = true
		}
		var (
			dc = int((c.dragFrom.X - p.X) / c.cellW)
			dr = int((c.dragFrom.Y - p.Y) / c.cellH)
		)
		if dc != 0 || dr != 0 {
			c.startCol = clampInt(c.startCol+dc, 0, maxInt(0, c.Cols()-1))
			c.startRow = clampInt(c.startRow+dr, 0, maxInt(0, c.Rows()-1))
			c.dragFrom = p
		}
		return
	}
	c.Chart.Move(p)
}

func (c *HeatmapWidget) tick(dt time.Duration) bool {
	return false
}

func (c *HeatmapWidget) drawData(cv Canvas, area Rect) {
	startRow, startCol, visRows, visCols := c.Visible()
	if visRows == 0 || visCols == 0 {
		return
	}
	var (
		labelW = 0.0
		labelH = 0.0
	)
	if len(c.rows) > 0 {
		labelW = 48
	}
	if len(c.cols) > 0 {
		labelH = FontSize * 1.4
	}
	grid := NewRect(area.X+labelW, area.Y+labelH, area.W-labelW, area.H-labelH)
	if grid.Empty() {
		return
	}
	c.gridArea = grid
	c.cellW = grid.W / float64(visCols)
	c.cellH = grid.H / float64(visRows)

	var (
		eased = c.anim.Eased()
		gap   = c.Style.CellGap
	)
	for r := 0; r < visRows; r++ {
		for col := 0; col < visCols; col++ {
			var (
				row  = startRow + r
				cc   = startCol + col
				v    = c.data[row][cc]
				cell = NewRect(grid.X+float64(col)*c.cellW+gap, grid.Y+float64(r)*c.cellH+gap, c.cellW-2*gap, c.cellH-2*gap)
				col8 = c.ValueToColor(v)
			)
			if eased < 1 {
				col8 = withAlpha(col8, uint8(float64(col8.A)*eased))
			}
			cv.FillRect(cell, col8)
		}
	}
	c.drawClusterBorders(cv, startRow, startCol, visRows, visCols)
	c.drawLabels(cv, grid, startRow, startCol, visRows, visCols, labelW, labelH)
	if hit := c.hover; hit.Ok() {
		cell := c.cellRect(hit.Serie, hit.Point)
		if !cell.Empty() {
			cv.StrokeRect(cell, 2, c.theme.Color("accent"))
		}
	}
}

// drawClusterBorders strokes edges between cells belonging to
// different clusters.
func (c *HeatmapWidget) drawClusterBorders(cv Canvas, startRow, startCol, visRows, visCols int) {
	if !c.clusterOn {
		return
	}
	var (
		cols = c.Cols()
		of   = make(map[int]int)
	)
	for id, cluster := range c.Clusters() {
		for _, ix := range cluster {
			of[ix] = id
		}
	}
	border := c.theme.Color("text")
	for r := 0; r < visRows; r++ {
		for col := 0; col < visCols; col++ {
			var (
				row  = startRow + r
				cc   = startCol + col
				ix   = row*cols + cc
				cell = c.cellRect(row, cc)
			)
			if col+1 < visCols && of[ix] != of[ix+1] {
				cv.Line(NewPos(cell.X+cell.W, cell.Y), NewPos(cell.X+cell.W, cell.Y+cell.H), 1.5, border, nil)
			}
			if r+1 < visRows && of[ix] != of[ix+cols] {
				cv.Line(NewPos(cell.X, cell.Y+cell.H), NewPos(cell.X+cell.W, cell.Y+cell.H), 1.5, border, nil)
			}
		}
	}
}

func (c *HeatmapWidget) drawLabels(cv Canvas, grid Rect, startRow, startCol, visRows, visCols int, labelW, labelH float64) {
	text := c.theme.Color("textSecondary")
	if labelW > 0 {
		for r := 0; r < visRows; r++ {
			row := startRow + r
			if row >= len(c.rows) {
				break
			}
			y := grid.Y + float64(r)*c.cellH + c.cellH/2
			cv.Text(c.rows[row], NewPos(grid.X-6, y+FontSize*0.3), FontSize*0.75, text, AlignRight)
		}
	}
	if labelH > 0 {
		for col := 0; col < visCols; col++ {
			cc := startCol + col
			if cc >= len(c.cols) {
				break
			}
			x := grid.X + float64(col)*c.cellW + c.cellW/2
			cv.Text(c.cols[cc], NewPos(x, grid.Y-5), FontSize*0.75, text, AlignCenter)
		}
	}
}

func (c *HeatmapWidget) cellRect(row, col int) Rect {
	startRow, startCol, visRows, visCols := c.Visible()
	var (
		r  = row - startRow
		cc = col - startCol
	)
	if r < 0 || r >= visRows || cc < 0 || cc >= visCols {
		return Rect{}
	}
	return NewRect(c.gridArea.X+float64(cc)*c.cellW, c.gridArea.Y+float64(r)*c.cellH, c.cellW, c.cellH)
}

// nearest maps the pointer to the cell underneath it; Serie carries
// the row, Point the column.
func (c *HeatmapWidget) nearest(p Pos) Hit {
	if c.cellW <= 0 || c.cellH <= 0 || !c.gridArea.Contains(p) {
		return NoHit
	}
	startRow, startCol, visRows, visCols := c.Visible()
	var (
		col = int((p.X - c.gridArea.X) / c.cellW)
		row = int((p.Y - c.gridArea.Y) / c.cellH)
	)
	if row < 0 || row >= visRows || col < 0 || col >= visCols {
		return NoHit
	}
	return Hit{Serie: startRow + row, Point: startCol + col}
}

func (c *HeatmapWidget) tooltipText(h Hit) string {
	v, ok := c.ValueAt(h.Serie, h.Point)
	if !ok {
		return ""
	}
	var (
		row = fmt.Sprintf("%d", h.Serie)
		col = fmt.Sprintf("%d", h.Point)
	)
	if h.Serie < len(c.rows) {
		row = c.rows[h.Serie]
	}
	if h.Point < len(c.cols) {
		col = c.cols[h.Point]
	}
	return fmt.Sprintf("%s / %s: %s", row, col, formatValue(v))
}

func (c *HeatmapWidget) legendItems() []legendItem {
	return nil
}
