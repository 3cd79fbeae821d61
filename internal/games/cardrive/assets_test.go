package cardrive

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/vovakirdan/cardrive/internal/core"
)

func TestEmbeddedModels(t *testing.T) {
	loader := NewEmbeddedLoader()
	ctx := context.Background()

	for _, name := range []string{ModelTruck, ModelGround, ModelCube} {
		m, err := loader.Load(ctx, name)
		if err != nil {
			t.Fatalf("Load(%q) failed: %v", name, err)
		}
		if m.Name != name {
			t.Errorf("Name = %q, expected %q", m.Name, name)
		}
		if m.ColorValue() == core.ColorDefault {
			t.Errorf("%s: expected a named color, got %q", name, m.Color)
		}
	}
}

func TestFSLoaderErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"m/broken.yaml": {Data: []byte("frames: [")},
		"m/empty.yaml":  {Data: []byte("name: empty\nframes: []\n")},
		"m/blank.yaml":  {Data: []byte("frames:\n  - []\n")},
		"m/ok.yaml":     {Data: []byte("frames:\n  - [\"#\"]\n")},
	}
	loader := NewFSLoader(fsys, "m")

	tests := []struct {
		name    string
		wantErr string
	}{
		{"missing", "cannot read model"},
		{"broken", "cannot parse model"},
		{"empty", "invalid model"},
		{"blank", "invalid model"},
		{"ok", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := loader.Load(context.Background(), tc.name)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if m.Name != tc.name || m.Glyph() != '#' {
					t.Errorf("unexpected model %+v", m)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error = %v, expected it to contain %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoadAsync(t *testing.T) {
	ctx := context.Background()
	res := Await(ctx, LoadAsync(ctx, NewEmbeddedLoader(), ModelCube))

	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if res.Name != ModelCube || res.Model == nil {
		t.Errorf("unexpected result %+v", res)
	}
}

type blockingLoader struct{}

func (blockingLoader) Load(ctx context.Context, name string) (*Model, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestAwaitTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	res := Await(ctx, LoadAsync(ctx, blockingLoader{}, ModelTruck))
	if res.Err == nil {
		t.Error("expected a timeout error")
	}
}

func TestLoadAsyncCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := <-LoadAsync(ctx, NewEmbeddedLoader(), ModelTruck)
	if res.Err == nil {
		t.Error("cancelled load should fail")
	}
}

func TestMixerFrames(t *testing.T) {
	m := &Model{
		FrameRate: 8,
		Frames:    [][]string{{"a"}, {"b"}},
	}
	mx := NewMixer(m)

	if got := mx.Frame()[0]; got != "a" {
		t.Errorf("frame at t=0 is %q, expected a", got)
	}

	// 0.125s at 8 fps is one frame.
	for i := 0; i < 13; i++ {
		mx.Update(0.01)
	}
	if got := mx.Frame()[0]; got != "b" {
		t.Errorf("frame at t=0.13 is %q, expected b", got)
	}

	for i := 0; i < 13; i++ {
		mx.Update(0.01)
	}
	if got := mx.Frame()[0]; got != "a" {
		t.Errorf("frame at t=0.26 is %q, expected a to loop", got)
	}
}

func TestMixerStatic(t *testing.T) {
	mx := NewMixer(&Model{Frames: [][]string{{"x"}, {"y"}}})
	mx.Update(10)
	if got := mx.Frame()[0]; got != "x" {
		t.Errorf("static model frame = %q, expected x", got)
	}
}
