package cardrive

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/cardrive/internal/core"
)

//go:embed models/*.yaml
var embeddedModels embed.FS

// Model names used by the game.
const (
	ModelTruck  = "truck"
	ModelGround = "ground"
	ModelCube   = "cube"
)

// Model is a sprite with optional animation frames.
type Model struct {
	Name      string     `yaml:"name"`
	Color     string     `yaml:"color"`
	FrameRate float64    `yaml:"frame_rate"` // Frames per clip second; 0 means static
	Frames    [][]string `yaml:"frames"`
}

// ColorValue maps the model color name to a screen color.
func (m *Model) ColorValue() core.Color {
	switch m.Color {
	case "red":
		return core.ColorBrightRed
	case "orange":
		return core.ColorOrange
	case "yellow":
		return core.ColorBrightYellow
	case "green":
		return core.ColorGreen
	case "blue":
		return core.ColorBlue
	case "cyan":
		return core.ColorCyan
	case "gray":
		return core.ColorGray
	case "white":
		return core.ColorBrightWhite
	default:
		return core.ColorDefault
	}
}

// Glyph returns the first rune of the first frame, used to fill scaled shapes.
func (m *Model) Glyph() rune {
	for _, r := range m.Frames[0][0] {
		return r
	}
	return '#'
}

func (m *Model) validate() error {
	if len(m.Frames) == 0 {
		return errors.New("no frames")
	}
	for i, f := range m.Frames {
		if len(f) == 0 || len(f[0]) == 0 {
			return fmt.Errorf("frame %d is empty", i)
		}
	}
	return nil
}

// Loader loads models by name.
type Loader interface {
	Load(ctx context.Context, name string) (*Model, error)
}

// FSLoader reads models/<name>.yaml from a file system.
type FSLoader struct {
	fsys fs.FS
	dir  string
}

// NewEmbeddedLoader returns a loader for the models compiled into the binary.
func NewEmbeddedLoader() *FSLoader {
	return &FSLoader{fsys: embeddedModels, dir: "models"}
}

// NewFSLoader returns a loader reading <dir>/<name>.yaml from fsys.
func NewFSLoader(fsys fs.FS, dir string) *FSLoader {
	return &FSLoader{fsys: fsys, dir: dir}
}

// Load reads and validates a model.
func (l *FSLoader) Load(ctx context.Context, name string) (*Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(l.fsys, path.Join(l.dir, name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("assets: cannot read model %s: %w", name, err)
	}

	var m Model
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("assets: cannot parse model %s: %w", name, err)
	}
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("assets: invalid model %s: %w", name, err)
	}
	if m.Name == "" {
		m.Name = name
	}
	return &m, nil
}

// LoadResult is the outcome of an asynchronous load.
type LoadResult struct {
	Name  string
	Model *Model
	Err   error
}

// LoadAsync starts loading a model and returns a channel that receives
// exactly one result.
func LoadAsync(ctx context.Context, l Loader, name string) <-chan LoadResult {
	ch := make(chan LoadResult, 1)
	go func() {
		m, err := l.Load(ctx, name)
		ch <- LoadResult{Name: name, Model: m, Err: err}
	}()
	return ch
}

// Await blocks until the load finishes or ctx is done.
func Await(ctx context.Context, future <-chan LoadResult) LoadResult {
	select {
	case res := <-future:
		return res
	case <-ctx.Done():
		return LoadResult{Err: ctx.Err()}
	}
}

// Mixer advances a model's animation clip.
type Mixer struct {
	model *Model
	time  float64
}

// NewMixer creates a mixer at clip time zero.
func NewMixer(m *Model) *Mixer {
	return &Mixer{model: m}
}

// Update advances the clip by delta seconds.
func (mx *Mixer) Update(delta float64) {
	mx.time += delta
}

// Frame returns the sprite rows for the current clip time.
func (mx *Mixer) Frame() []string {
	frames := mx.model.Frames
	if mx.model.FrameRate <= 0 || len(frames) == 1 {
		return frames[0]
	}
	idx := int(mx.time*mx.model.FrameRate) % len(frames)
	return frames[idx]
}
