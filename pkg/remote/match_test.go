package remote

import (
	"errors"
	"testing"
)

func TestMatchSelectsCurrentState(t *testing.T) {
	handlers := func() []Handler[int, string] {
		return []Handler[int, string]{
			OnNotRequested[int, string](func() string { return "not requested" }),
			OnPending[int, string](func() string { return "pending" }),
			OnFailed[int, string](func(err error) string { return "failed: " + err.Error() }),
			OnAvailable[int, string](func(n int) string { return "available" }),
		}
	}

	cases := []struct {
		name string
		d    Data[int]
		want string
	}{
		{"not requested", NotRequested[int](), "not requested"},
		{"pending", Pending[int](), "pending"},
		{"failed", Failed[int](errors.New("boom")), "failed: boom"},
		{"available", Available(1), "available"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Match(tc.d, handlers()...)
			if !ok {
				t.Fatal("Expected a handler to match")
			}
			if got != tc.want {
				t.Errorf("Match = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestMatchNoHandlerMatches(t *testing.T) {
	got, ok := Match(Available(1),
		OnFailed[int, string](func(err error) string { return "failed" }),
	)
	if ok {
		t.Error("Expected no handler to match")
	}
	if got != "" {
		t.Errorf("Expected zero value, got %q", got)
	}
}

func TestMatchOnWaiting(t *testing.T) {
	waiting := OnWaiting[int, string](func() string { return "waiting" })
	ready := OnAvailable[int, string](func(int) string { return "ready" })

	if got := MustMatch(NotRequested[int](), waiting, ready); got != "waiting" {
		t.Errorf("Expected 'waiting' for NotRequested, got %q", got)
	}
	if got := MustMatch(Pending[int](), waiting, ready); got != "waiting" {
		t.Errorf("Expected 'waiting' for Pending, got %q", got)
	}
	if got := MustMatch(Available(1), waiting, ready); got != "ready" {
		t.Errorf("Expected 'ready' for Available, got %q", got)
	}
}

func TestMatchAvailableReceivesValue(t *testing.T) {
	got := MustMatch(Available(21),
		OnAvailable[int, int](func(n int) int { return n * 2 }),
	)
	if got != 42 {
		t.Errorf("Expected 42, got %d", got)
	}
}
