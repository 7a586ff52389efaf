package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/orbit/pkg/mindmap"
)

func pickerGraph(t *testing.T) *mindmap.Graph {
	t.Helper()
	g, err := mindmap.UnmarshalGraph([]byte(cliGraph))
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func press(m NodePickerModel, msg tea.KeyMsg) (NodePickerModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(NodePickerModel), cmd
}

func TestNodePickerItems(t *testing.T) {
	g := pickerGraph(t)
	positions := mindmap.Positions{
		"root": {X: 0, Y: -150},
		"a":    {X: 10, Y: 20},
		"b":    {X: 30, Y: 40},
		"a1":   {X: 50, Y: 60},
	}

	m := NewNodePickerModel(g, positions)
	var ids []string
	for _, it := range m.Items {
		ids = append(ids, it.ID)
	}
	if got := strings.Join(ids, ","); got != "root,a" {
		t.Fatalf("items = %s, want root,a (leaves are skipped)", got)
	}
	if m.Items[0].Name != "Project" || m.Items[0].Children != 2 {
		t.Errorf("root item = %+v", m.Items[0])
	}

	delete(positions, "a")
	m = NewNodePickerModel(g, positions)
	if len(m.Items) != 1 || m.Items[0].ID != "root" {
		t.Errorf("unpositioned nodes should be skipped, got %+v", m.Items)
	}
}

func TestNodePickerNavigation(t *testing.T) {
	g := pickerGraph(t)
	m := NewNodePickerModel(g, mindmap.Positions{"root": {}, "a": {}})

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.Cursor != 0 {
		t.Errorf("cursor moved above the first item: %d", m.Cursor)
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	if m.Cursor != 1 {
		t.Errorf("cursor = %d, want clamped to 1", m.Cursor)
	}

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Selected == nil || m.Selected.ID != "a" {
		t.Fatalf("selected = %+v, want a", m.Selected)
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}
}

func TestNodePickerQuit(t *testing.T) {
	g := pickerGraph(t)
	m := NewNodePickerModel(g, mindmap.Positions{"root": {}})

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Error("q should quit the program")
	}
	if m.Selected != nil {
		t.Error("quitting should not select a node")
	}
}

func TestNodePickerScroll(t *testing.T) {
	m := NodePickerModel{Height: 5}
	for i := 0; i < 8; i++ {
		m.Items = append(m.Items, PickerItem{ID: string(rune('a' + i)), Children: 1})
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 4})
	m = next.(NodePickerModel)
	if m.Height != 5 {
		t.Errorf("height = %d, want the minimum of 5", m.Height)
	}

	for i := 0; i < 6; i++ {
		m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.Cursor != 6 || m.Offset != 2 {
		t.Errorf("cursor %d offset %d, want 6 and 2", m.Cursor, m.Offset)
	}
	if view := m.View(); !strings.Contains(view, "[7/8]") {
		t.Errorf("view lacks the position counter:\n%s", view)
	}
}
