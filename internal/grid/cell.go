package grid

// A Cell addresses one grid square in view space.
type Cell struct {
	Row int
	Col int
}

// A Layout fixes the pixel size of one grid cell.
type Layout struct {
	UnitWidth int // px per grid unit (column)
	RowHeight int // px per pitch row
}

// CellAt maps a pointer coordinate to the cell underneath it. The
// second return is false when the pointer lies outside the pitch rows;
// such positions have no active cell and are not an error.
func (l Layout) CellAt(x, y int) (Cell, bool) {
	if x < 0 || y < 0 {
		return Cell{}, false
	}
	c := Cell{Row: y / l.RowHeight, Col: x / l.UnitWidth}
	if c.Row >= RowCount {
		return Cell{}, false
	}
	return c, true
}
