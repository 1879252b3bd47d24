package core

import (
	"math"
	"strings"
)

// Cell is one character position on the screen.
type Cell struct {
	Rune  rune
	Color Color
}

// Screen is a 2D character buffer for rendering the simulation.
// It decouples drawing from the terminal: the game writes runes and colors,
// the platform turns the buffer into styled output.
type Screen struct {
	width  int
	height int
	cells  [][]Cell
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  max(width, 0),
		height: max(height, 0),
	}
	s.allocate()
	s.Clear()
	return s
}

func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
	}
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Resize changes the screen dimensions. Content is discarded.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width = max(width, 0)
	s.height = max(height, 0)
	s.allocate()
	s.Clear()
}

// Clear fills the entire screen with uncolored spaces.
func (s *Screen) Clear() {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = Cell{Rune: ' '}
		}
	}
}

// Set places a rune at the given position, keeping the default color.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune) {
	s.SetColored(x, y, r, ColorDefault)
}

// SetColored places a colored rune at the given position.
func (s *Screen) SetColored(x, y int, r rune, c Color) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.cells[y][x] = Cell{Rune: r, Color: c}
}

// Get returns the rune at the given position, or space when out of bounds.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at the given position, or a blank cell when out of bounds.
func (s *Screen) GetCell(x, y int) Cell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return Cell{Rune: ' '}
	}
	return s.cells[y][x]
}

// DrawText writes a string horizontally starting at (x, y).
func (s *Screen) DrawText(x, y int, text string) {
	s.DrawTextColored(x, y, text, ColorDefault)
}

// DrawTextColored writes a colored string horizontally starting at (x, y).
func (s *Screen) DrawTextColored(x, y int, text string, c Color) {
	i := 0
	for _, r := range text {
		s.SetColored(x+i, y, r, c)
		i++
	}
}

// DrawTextCentered draws text centered horizontally at the given y position.
func (s *Screen) DrawTextCentered(y int, text string) {
	x := (s.width - len([]rune(text))) / 2
	s.DrawText(x, y, text)
}

// FillCells fills the half-open cell range [x0,x1) x [y0,y1).
func (s *Screen) FillCells(x0, y0, x1, y1 int, r rune, c Color) {
	for y := max(y0, 0); y < min(y1, s.height); y++ {
		for x := max(x0, 0); x < min(x1, s.width); x++ {
			s.cells[y][x] = Cell{Rune: r, Color: c}
		}
	}
}

// DrawBox draws a box outline using box-drawing characters.
func (s *Screen) DrawBox(x, y, w, h int) {
	right, bottom := x+w-1, y+h-1

	s.Set(x, y, '┌')
	s.Set(right, y, '┐')
	s.Set(x, bottom, '└')
	s.Set(right, bottom, '┘')

	for i := x + 1; i < right; i++ {
		s.Set(i, y, '─')
		s.Set(i, bottom, '─')
	}
	for j := y + 1; j < bottom; j++ {
		s.Set(x, j, '│')
		s.Set(right, j, '│')
	}
}

// DrawHLine draws a horizontal line from (x, y) with the given length.
func (s *Screen) DrawHLine(x, y, length int, r rune, c Color) {
	for i := 0; i < length; i++ {
		s.SetColored(x+i, y, r, c)
	}
}

// String converts the screen buffer to plain text, rows joined with newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.width; x++ {
			sb.WriteRune(s.cells[y][x].Rune)
		}
	}
	return sb.String()
}

// Viewport maps world-space rectangles onto a region of screen cells.
type Viewport struct {
	OffsetX, OffsetY int     // Top-left cell of the region
	Cols, Rows       int     // Region size in cells
	ScaleX, ScaleY   float64 // Cells per world unit
}

// NewViewport fits a world of worldW x worldH units into cols x rows cells.
func NewViewport(offsetX, offsetY, cols, rows int, worldW, worldH float64) Viewport {
	vp := Viewport{OffsetX: offsetX, OffsetY: offsetY, Cols: cols, Rows: rows}
	if worldW > 0 {
		vp.ScaleX = float64(cols) / worldW
	}
	if worldH > 0 {
		vp.ScaleY = float64(rows) / worldH
	}
	return vp
}

// Cells converts a world rectangle into a clipped half-open cell range.
// Any non-empty rectangle inside the viewport covers at least one cell.
func (vp Viewport) Cells(r Rect) (x0, y0, x1, y1 int) {
	x0 = int(math.Floor(r.X * vp.ScaleX))
	y0 = int(math.Floor(r.Y * vp.ScaleY))
	x1 = int(math.Ceil(r.Right() * vp.ScaleX))
	y1 = int(math.Ceil(r.Bottom() * vp.ScaleY))

	x0, x1 = Clamp(x0, 0, vp.Cols), Clamp(x1, 0, vp.Cols)
	y0, y1 = Clamp(y0, 0, vp.Rows), Clamp(y1, 0, vp.Rows)

	return x0 + vp.OffsetX, y0 + vp.OffsetY, x1 + vp.OffsetX, y1 + vp.OffsetY
}

// Fill paints a world rectangle onto the screen.
func (vp Viewport) Fill(dst *Screen, r Rect, ch rune, c Color) {
	x0, y0, x1, y1 := vp.Cells(r)
	dst.FillCells(x0, y0, x1, y1, ch, c)
}
