// ABOUTME: Keeps the selected frame row visible in the sheet viewport
// ABOUTME: Scrolls less-style: the cursor travels to the middle row, then the sheet scrolls under it

package tui

// ScrollPhase describes where the cursor sits relative to the scrolling regions
type ScrollPhase int

const (
	TopPhase    ScrollPhase = iota // Viewport pinned to the first row
	MiddlePhase                    // Cursor held on the middle row
	BottomPhase                    // Viewport pinned to the last row
)

// ViewportManager computes the scroll offset for a list of frame rows
type ViewportManager struct {
	height int // Visible rows
	cursor int // Selected row
	rows   int // Total rows
}

// NewViewportManager creates a manager for rows frame rows shown height at a time
func NewViewportManager(height, cursor, rows int) *ViewportManager {
	return &ViewportManager{
		height: height,
		cursor: cursor,
		rows:   rows,
	}
}

// SetHeight updates the number of visible rows
func (vm *ViewportManager) SetHeight(height int) {
	vm.height = height
}

// SetCursorPos updates the selected row
func (vm *ViewportManager) SetCursorPos(pos int) {
	vm.cursor = pos
}

// SetTotalItems updates the row count
func (vm *ViewportManager) SetTotalItems(total int) {
	vm.rows = total
}

// GetPhase returns the current scrolling phase
func (vm *ViewportManager) GetPhase() ScrollPhase {
	if vm.rows == 0 || vm.height < 1 {
		return TopPhase
	}

	middle := vm.height / 2

	switch {
	case vm.cursor < middle:
		return TopPhase
	case vm.cursor < vm.rows-vm.height+middle:
		return MiddlePhase
	default:
		return BottomPhase
	}
}

// CalculateOffset returns the first visible row
func (vm *ViewportManager) CalculateOffset() int {
	switch vm.GetPhase() {
	case MiddlePhase:
		return vm.cursor - vm.height/2
	case BottomPhase:
		return max(vm.rows-vm.height, 0)
	default:
		return 0
	}
}
