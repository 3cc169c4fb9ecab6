package toast

import (
	"testing"
	"time"
)

// fakeClock is a controllable time source.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestTray() (*Tray, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	return NewTray(WithTTL(5*time.Second), WithClock(clock.now)), clock
}

func TestTransientToastExpires(t *testing.T) {
	tray, clock := newTestTray()
	tray.Success("saved")

	if got := len(tray.Active()); got != 1 {
		t.Fatalf("Expected 1 active toast, got %d", got)
	}

	clock.advance(6 * time.Second)
	if got := len(tray.Active()); got != 0 {
		t.Errorf("Expected transient toast to expire, got %d active", got)
	}
}

func TestStickyToastPersistsUntilDismissed(t *testing.T) {
	tray, clock := newTestTray()
	id := tray.Error("failed to load posts")

	clock.advance(time.Hour)
	active := tray.Active()
	if len(active) != 1 {
		t.Fatalf("Expected sticky toast to survive, got %d active", len(active))
	}
	if active[0].Level != LevelError || !active[0].Sticky {
		t.Errorf("Expected sticky error toast, got %+v", active[0])
	}

	tray.Dismiss(id)
	if got := len(tray.Active()); got != 0 {
		t.Errorf("Expected empty tray after dismiss, got %d", got)
	}
}

func TestDismissUnknownIDIsNoop(t *testing.T) {
	tray, _ := newTestTray()
	tray.Info("loading posts...")

	tray.Dismiss(999)
	if got := len(tray.Active()); got != 1 {
		t.Errorf("Expected toast to survive unknown dismiss, got %d", got)
	}
}

func TestPushAssignsDistinctIDs(t *testing.T) {
	tray, _ := newTestTray()
	a := tray.Info("one")
	b := tray.Info("two")

	if a == b {
		t.Errorf("Expected distinct ids, got %d and %d", a, b)
	}
}

func TestLevels(t *testing.T) {
	tray, _ := newTestTray()
	tray.Success("s")
	tray.Info("i")
	tray.Warning("w")
	tray.Error("e")

	counts := map[Level]int{}
	for _, toast := range tray.Active() {
		counts[toast.Level]++
	}
	for _, level := range []Level{LevelSuccess, LevelInfo, LevelWarning, LevelError} {
		if counts[level] != 1 {
			t.Errorf("Expected one %s toast, got %d", level, counts[level])
		}
	}
}

func TestOnlyErrorIsSticky(t *testing.T) {
	tray, clock := newTestTray()
	tray.Success("s")
	tray.Info("i")
	tray.Error("e")

	clock.advance(time.Minute)
	active := tray.Active()
	if len(active) != 1 || active[0].Level != LevelError {
		t.Errorf("Expected only the error toast to remain, got %v", active)
	}
}

func TestLen(t *testing.T) {
	tray, _ := newTestTray()
	tray.Info("a")
	tray.Error("b")
	if tray.Len() != 2 {
		t.Errorf("Expected Len 2, got %d", tray.Len())
	}
}
