package mouse

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func testHitMap() *HitMap {
	h := NewHitMap()
	h.Set(LeftFile, Rect{X: 0, Y: 0, W: 60, H: 20})
	h.Set(RightFile, Rect{X: 60, Y: 0, W: 60, H: 20})
	return h
}

func TestRouteClickResolvesQuadrantAndLocalCoords(t *testing.T) {
	h := testHitMap()
	ev, ok := Route(tea.MouseMsg{X: 65, Y: 5, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}, h)
	if !ok {
		t.Fatal("expected a routed event")
	}
	if ev.Quadrant != RightFile || ev.Kind != Click || ev.Row != 5 || ev.Col != 5 {
		t.Fatalf("got %+v", ev)
	}
}

func TestRouteOutsideEveryQuadrantFails(t *testing.T) {
	h := testHitMap()
	if _, ok := Route(tea.MouseMsg{X: 200, Y: 200, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}, h); ok {
		t.Fatal("expected no quadrant to match")
	}
}

func TestRouteWheelIgnoresAction(t *testing.T) {
	h := testHitMap()
	ev, ok := Route(tea.MouseMsg{X: 10, Y: 10, Button: tea.MouseButtonWheelDown}, h)
	if !ok || ev.Kind != WheelDown || ev.Quadrant != LeftFile {
		t.Fatalf("got %+v, %v", ev, ok)
	}
}

func TestRouteReleaseIsIgnored(t *testing.T) {
	h := testHitMap()
	if _, ok := Route(tea.MouseMsg{X: 10, Y: 10, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease}, h); ok {
		t.Fatal("expected release events to be ignored")
	}
}

func TestQuadrantHelpers(t *testing.T) {
	if !LeftFile.FilePane() || LeftFile.MenuPane() {
		t.Fatal("LeftFile should be a file pane, not a menu pane")
	}
	if !RightMenu.MenuPane() || RightMenu.FilePane() {
		t.Fatal("RightMenu should be a menu pane, not a file pane")
	}
	if LeftFile.TabIndex() != 0 || RightMenu.TabIndex() != 1 {
		t.Fatalf("TabIndex mismatch: left=%d right=%d", LeftFile.TabIndex(), RightMenu.TabIndex())
	}
}
