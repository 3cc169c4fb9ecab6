package remote

import (
	"errors"
	"testing"
)

func TestDictAbsentKeyReadsNotRequested(t *testing.T) {
	d := NewDict[string, int]()

	if got := d.Get("missing"); !got.IsNotRequested() {
		t.Errorf("Absent key should read NotRequested, got %v", got.State())
	}
	if !d.ShouldFetch("missing") {
		t.Error("Absent key should pass the gate")
	}
}

func TestDictKeysAreIndependent(t *testing.T) {
	d := NewDict[string, string]()
	d = d.With("img1", Pending[string]())

	if d.ShouldFetch("img1") {
		t.Error("img1 is Pending, gate should be closed")
	}
	if !d.ShouldFetch("img2") {
		t.Error("img2 was never requested, gate should be open")
	}
}

func TestDictWithDoesNotMutateOriginal(t *testing.T) {
	orig := NewDict[string, int]().With("a", Available(1))
	next := orig.With("a", Failed[int](errors.New("boom")))

	if v, _ := orig.Get("a").Value(); v != 1 {
		t.Errorf("Original snapshot mutated: got %v", orig.Get("a"))
	}
	if !next.Get("a").IsFailed() {
		t.Errorf("Expected Failed in the new snapshot, got %v", next.Get("a").State())
	}
}

func TestDictLen(t *testing.T) {
	d := NewDict[string, int]().
		With("a", Pending[int]()).
		With("b", Available(2))

	if d.Len() != 2 {
		t.Errorf("Expected 2 slots, got %d", d.Len())
	}
}
