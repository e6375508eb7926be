package input

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-rts/common"
)

const panScript = `
screen: [800, 600]
steps:
  - duration: 0.5
    keys: [W, d]
  - duration: 0.25
    pointer: [400, 0]
    scroll: 2
  - duration: 1
    middle: true
    pointer: [100, 100]
`

func mustParse(t *testing.T, doc string) *Script {
	t.Helper()
	s, err := ParseScript([]byte(doc))
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}
	return s
}

func mustPlay(t *testing.T, s *Script) Player {
	t.Helper()
	p, err := NewPlayer(s)
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	return p
}

func TestParseScript(t *testing.T) {
	s := mustParse(t, panScript)

	if s.Screen != [2]int{800, 600} {
		t.Errorf("screen = %v, want [800 600]", s.Screen)
	}
	if len(s.Steps) != 3 {
		t.Fatalf("steps = %d, want 3", len(s.Steps))
	}
	if got := s.Duration(); got != 1.75 {
		t.Errorf("duration = %v, want 1.75", got)
	}
	if codes := s.Steps[0].codes; len(codes) != 2 || codes[0] != common.KeyW || codes[1] != common.KeyD {
		t.Errorf("resolved codes = %v, want [W D]", codes)
	}
}

func TestParseScript_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"no steps", "screen: [800, 600]\n", "no steps"},
		{"unknown key", "steps:\n  - duration: 1\n    keys: [hyperspace]\n", `unknown key "hyperspace"`},
		{"zero duration", "steps:\n  - duration: 0\n", "duration must be positive"},
		{"bad yaml", "steps: [", "parsing input script"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScript([]byte(tt.doc))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseScript_DefaultScreen(t *testing.T) {
	s := mustParse(t, "steps:\n  - duration: 1\n")
	p := mustPlay(t, s)

	if w, h := p.ScreenSize(); w != 1280 || h != 720 {
		t.Errorf("screen = %dx%d, want 1280x720", w, h)
	}
	if x, y := p.PointerPosition(); x != 640 || y != 360 {
		t.Errorf("pointer = (%v, %v), want screen center", x, y)
	}
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pan.yaml")
	if err := os.WriteFile(path, []byte(panScript), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadScript(path)
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if len(s.Steps) != 3 {
		t.Errorf("steps = %d, want 3", len(s.Steps))
	}

	if _, err := LoadScript(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestPlayer_Playback(t *testing.T) {
	p := mustPlay(t, mustParse(t, panScript))

	if !p.KeyHeld(common.KeyW) || !p.KeyHeld(common.KeyD) {
		t.Fatal("first step keys not held")
	}
	if x, y := p.PointerPosition(); x != 400 || y != 300 {
		t.Errorf("pointer = (%v, %v), want (400, 300)", x, y)
	}

	p.Advance(0.5)
	if p.Step() != 1 {
		t.Fatalf("step = %d, want 1", p.Step())
	}
	if p.KeyHeld(common.KeyW) {
		t.Error("W still held after its step ended")
	}
	if x, y := p.PointerPosition(); x != 400 || y != 0 {
		t.Errorf("pointer = (%v, %v), want (400, 0)", x, y)
	}
	if got := p.ScrollDelta(); got != 2 {
		t.Errorf("scroll = %v, want 2", got)
	}
	if got := p.ScrollDelta(); got != 0 {
		t.Errorf("scroll delivered twice: %v", got)
	}

	p.Advance(0.3)
	if p.Step() != 2 || !p.MiddleButtonHeld() {
		t.Fatalf("step = %d middle = %v, want step 2 with middle held", p.Step(), p.MiddleButtonHeld())
	}

	p.Advance(5)
	if !p.Done() {
		t.Fatal("player should be done")
	}
	if p.MiddleButtonHeld() || p.KeyHeld(common.KeyD) {
		t.Error("finished player still holds input")
	}
	if got := p.Elapsed(); got < 5.79 || got > 5.81 {
		t.Errorf("elapsed = %v, want 5.8", got)
	}
}

func TestPlayer_CrossesSeveralStepsInOneAdvance(t *testing.T) {
	p := mustPlay(t, mustParse(t, panScript))

	p.Advance(0.8)

	if p.Step() != 2 {
		t.Errorf("step = %d, want 2", p.Step())
	}
	if got := p.ScrollDelta(); got != 2 {
		t.Errorf("scroll from skipped step = %v, want 2", got)
	}
}

func TestPlayer_Loop(t *testing.T) {
	s := mustParse(t, "loop: true\nsteps:\n  - duration: 1\n    keys: [q]\n  - duration: 1\n    keys: [e]\n")
	p := mustPlay(t, s)

	p.Advance(2.5)

	if p.Done() {
		t.Fatal("looping player should never finish")
	}
	if p.Step() != 0 || !p.KeyHeld(common.KeyQ) {
		t.Errorf("step = %d, want wrap to 0 with Q held", p.Step())
	}
}

func TestPlayer_IgnoresNonPositiveDt(t *testing.T) {
	p := mustPlay(t, mustParse(t, panScript))
	p.Advance(0)
	p.Advance(-1)

	if p.Step() != 0 || p.Elapsed() != 0 {
		t.Errorf("step = %d elapsed = %v, want untouched", p.Step(), p.Elapsed())
	}
}

func TestNewPlayer_ValidatesHandBuiltScripts(t *testing.T) {
	tests := []struct {
		name    string
		script  *Script
		wantErr string
	}{
		{"no steps", &Script{Loop: true}, "no steps"},
		{"zero duration in a loop", &Script{
			Loop:  true,
			Steps: []Step{{Duration: 1}, {Duration: 0}},
		}, "duration must be positive"},
		{"negative duration", &Script{Steps: []Step{{Duration: -2}}}, "duration must be positive"},
		{"unknown key", &Script{Steps: []Step{{Duration: 1, Keys: []string{"hyperspace"}}}}, "unknown key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPlayer(tt.script)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want mention of %q", err, tt.wantErr)
			}
			if p != nil {
				t.Error("expected no player for an invalid script")
			}
		})
	}
}

func TestNewPlayer_ResolvesHandBuiltKeys(t *testing.T) {
	s := &Script{
		Loop:  true,
		Steps: []Step{{Duration: 0.5, Keys: []string{"Q"}}, {Duration: 0.5, Keys: []string{"e"}}},
	}
	p := mustPlay(t, s)

	if w, h := p.ScreenSize(); w != 1280 || h != 720 {
		t.Errorf("screen = %dx%d, want default 1280x720", w, h)
	}
	if !p.KeyHeld(common.KeyQ) {
		t.Error("Q should be held in the first step")
	}

	p.Advance(10.75)
	if p.Done() || p.Step() != 1 || !p.KeyHeld(common.KeyE) {
		t.Errorf("step = %d done = %v, want looping on step 1 with E held", p.Step(), p.Done())
	}
}
