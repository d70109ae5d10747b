// ABOUTME: Tests for ViewportManager scrolling logic
// ABOUTME: Verifies the cursor travels to the middle row before the sheet scrolls

package tui

import "testing"

func TestViewportManager_Phases(t *testing.T) {
	// 10 visible rows over 50 frames: middle 5, bottom threshold 45
	tests := []struct {
		name       string
		cursor     int
		wantOffset int
		wantPhase  ScrollPhase
	}{
		{"first row", 0, 0, TopPhase},
		{"just before middle", 4, 0, TopPhase},
		{"middle start", 5, 0, MiddlePhase},
		{"scrolling", 25, 20, MiddlePhase},
		{"just before bottom", 44, 39, MiddlePhase},
		{"bottom threshold", 45, 40, BottomPhase},
		{"last row", 49, 40, BottomPhase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := NewViewportManager(10, tt.cursor, 50)

			if got := vm.CalculateOffset(); got != tt.wantOffset {
				t.Errorf("CalculateOffset() = %d, want %d", got, tt.wantOffset)
			}

			if got := vm.GetPhase(); got != tt.wantPhase {
				t.Errorf("GetPhase() = %v, want %v", got, tt.wantPhase)
			}
		})
	}
}

func TestViewportManager_ShortSheet(t *testing.T) {
	// Fewer frames than rows never scrolls
	vm := NewViewportManager(20, 0, 8)

	for cursor := range 8 {
		vm.SetCursorPos(cursor)

		if got := vm.CalculateOffset(); got != 0 {
			t.Errorf("cursor %d: offset = %d, want 0", cursor, got)
		}
	}
}

func TestViewportManager_EmptyAndZeroHeight(t *testing.T) {
	if got := NewViewportManager(10, 0, 0).CalculateOffset(); got != 0 {
		t.Errorf("empty sheet offset = %d, want 0", got)
	}

	if got := NewViewportManager(0, 5, 50).CalculateOffset(); got != 0 {
		t.Errorf("zero height offset = %d, want 0", got)
	}
}

func TestViewportManager_Setters(t *testing.T) {
	vm := NewViewportManager(10, 0, 50)

	vm.SetTotalItems(100)
	vm.SetHeight(20)
	vm.SetCursorPos(50)

	// middle 10, offset 40
	if got := vm.CalculateOffset(); got != 40 {
		t.Errorf("offset = %d, want 40", got)
	}

	vm.SetTotalItems(55)

	// bottom threshold 45, offset clamps to 35
	if got := vm.CalculateOffset(); got != 35 {
		t.Errorf("offset = %d, want 35", got)
	}
}
