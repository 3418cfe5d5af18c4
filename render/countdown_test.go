package render

import (
	"testing"
	"time"
)

func TestCountdownSequence(t *testing.T) {
	c := NewCountdown(3, "Go!")
	if c.Active() {
		t.Fatal("new countdown is active before Start")
	}

	c.Start()
	var labels []string
	for c.Active() {
		label := c.Label()
		if len(labels) == 0 || labels[len(labels)-1] != label {
			labels = append(labels, label)
		}
		c.Advance(250 * time.Millisecond)
	}

	want := []string{"3", "2", "1", "Go!"}
	if len(labels) != len(want) {
		t.Fatalf("labels = %v, want %v", labels, want)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("labels = %v, want %v", labels, want)
			break
		}
	}
	if c.Label() != "" {
		t.Errorf("Label() after finish = %q, want empty", c.Label())
	}
}

func TestCountdownSkipAndDefaults(t *testing.T) {
	c := NewCountdown(-2, "")
	c.Start()
	if got := c.Label(); got != "Go!" {
		t.Errorf("Label() = %q, want default go label", got)
	}
	c.Skip()
	if c.Active() {
		t.Error("countdown active after Skip")
	}
}
