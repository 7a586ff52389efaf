package mindmap

import (
	"slices"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestPositionsSink(t *testing.T) {
	p := Positions{}
	if _, ok := p.Position("a"); ok {
		t.Fatal("empty map reports a position")
	}
	p.SetPosition("b", Position{X: 1, Y: 2})
	p.SetPosition("a", Position{X: 3, Y: 4})

	if got, ok := p.Position("b"); !ok || got != (Position{X: 1, Y: 2}) {
		t.Errorf("Position(b) = %v, %v", got, ok)
	}
	if ids := p.IDs(); !slices.Equal(ids, []string{"a", "b"}) {
		t.Errorf("IDs = %v", ids)
	}

	c := p.Clone()
	c.SetPosition("a", Position{})
	if p["a"] != (Position{X: 3, Y: 4}) {
		t.Error("Clone shares storage with original")
	}
}

func TestPositionsBounds(t *testing.T) {
	if b := (Positions{}).Bounds(r2.Vec{X: 10, Y: 10}); b != (r2.Box{}) {
		t.Errorf("empty Bounds = %v, want zero box", b)
	}

	p := Positions{
		"a": {X: 0, Y: 0},
		"b": {X: 100, Y: -50},
		"c": {X: -20, Y: 30},
	}
	got := p.Bounds(r2.Vec{X: 40, Y: 20})
	want := r2.Box{Min: r2.Vec{X: -40, Y: -60}, Max: r2.Vec{X: 120, Y: 40}}
	if got != want {
		t.Errorf("Bounds = %v, want %v", got, want)
	}
}

func TestPositionVec(t *testing.T) {
	p := Position{X: 1.5, Y: -2}
	if FromVec(p.Vec()) != p {
		t.Errorf("FromVec(Vec()) = %v, want %v", FromVec(p.Vec()), p)
	}
}
