package cardrive

import (
	"fmt"
	"math"
	"sort"

	"github.com/vovakirdan/cardrive/internal/core"
)

// Camera and scene constants for the terminal projection.
const (
	cameraY     = 2.0
	cameraZ     = 5.0
	fovDegrees  = 75.0
	cellAspect  = 2.0  // Terminal cells are about twice as tall as wide
	roadY       = -0.4 // Road surface, just under the wheels
	roadHalfW   = 5.5
	farZ        = -60.0
	nearDepth   = 0.6 // Nothing closer to the camera than this is drawn
	dashLength  = 2.5
	dashPeriod  = 5.0
	truckHeight = 1.0
)

// Visual characters for rendering
const (
	RoadChar     = ' '
	EdgeChar     = '█'
	LaneMarkChar = '┃'
	GrassChar    = '░'
)

// projector maps world positions to screen cells.
type projector struct {
	cx, horizon float64
	focal       float64
}

func newProjector(w, h int) projector {
	return projector{
		cx:      float64(w) / 2,
		horizon: float64(h) * 0.4,
		focal:   (float64(h) / 2) / math.Tan(fovDegrees*math.Pi/360),
	}
}

// depth returns the distance in front of the camera along -z.
func (p projector) depth(z float64) float64 {
	return cameraZ - z
}

// project returns the screen cell for a world point and its depth.
func (p projector) project(v core.Vec3) (sx, sy, d float64) {
	d = p.depth(v.Z)
	sx = p.cx + v.X/d*p.focal*cellAspect
	sy = p.horizon - (v.Y-cameraY)/d*p.focal
	return sx, sy, d
}

// Render draws the current frame. It runs in every phase so the idle scene
// stays visible between runs.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() == 0 {
		return
	}

	proj := newProjector(dst.Width(), dst.Height())
	g.drawRoad(dst, proj)
	g.drawEntities(dst, proj)
	g.drawHUD(dst)

	switch {
	case g.phase == PhaseNotStarted:
		g.drawStartPrompt(dst)
	case g.paused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

// drawRoad fills each row below the horizon with the road at that depth.
// Lane marks scroll with the ground position.
func (g *Game) drawRoad(dst *core.Screen, proj projector) {
	groundColor := core.ColorGray
	phase := 0.0
	if g.world.Ground != nil {
		phase = g.world.Ground.Z
		if g.models.Ground != nil {
			groundColor = g.models.Ground.ColorValue()
		}
	}

	for y := int(math.Ceil(proj.horizon)) + 1; y < dst.Height(); y++ {
		d := (cameraY - roadY) * proj.focal / (float64(y) - proj.horizon)
		z := cameraZ - d
		if z < farZ {
			continue
		}

		half := roadHalfW / d * proj.focal * cellAspect
		left := int(math.Round(proj.cx - half))
		right := int(math.Round(proj.cx + half))

		for x := 0; x < dst.Width(); x++ {
			switch {
			case x < left || x > right:
				dst.SetColored(x, y, GrassChar, core.ColorGreen)
			case x == left || x == right:
				dst.SetColored(x, y, EdgeChar, core.ColorBrightWhite)
			default:
				dst.SetColored(x, y, RoadChar, groundColor)
			}
		}

		if g.world.Ground != nil && math.Mod(math.Abs(z-phase), dashPeriod) < dashLength {
			for _, lane := range []float64{-roadHalfW / 3, roadHalfW / 3} {
				lx := int(math.Round(proj.cx + lane/d*proj.focal*cellAspect))
				dst.SetColored(lx, y, LaneMarkChar, core.ColorBrightYellow)
			}
		}
	}
}

type drawable struct {
	z    float64
	draw func()
}

// drawEntities paints obstacles and the truck far to near.
func (g *Game) drawEntities(dst *core.Screen, proj projector) {
	var items []drawable

	if g.models.Cube != nil {
		glyph := g.models.Cube.Glyph()
		color := g.models.Cube.ColorValue()
		size := g.cfg.Obstacles.Scale
		for _, o := range g.world.Obstacles {
			pos := o.Pos
			items = append(items, drawable{z: pos.Z, draw: func() {
				drawCube(dst, proj, pos, size, glyph, color)
			}})
		}
	}

	if g.world.Player != nil && g.mixer != nil {
		pos := g.world.Player.Pos
		items = append(items, drawable{z: pos.Z, draw: func() {
			g.drawTruck(dst, proj, pos)
		}})
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].z < items[j].z })
	for _, it := range items {
		it.draw()
	}
}

// drawCube draws an obstacle as a filled block scaled by depth.
func drawCube(dst *core.Screen, proj projector, pos core.Vec3, size float64, glyph rune, color core.Color) {
	sx, sy, d := proj.project(pos)
	if d < nearDepth {
		return
	}
	w := math.Max(1, size/d*proj.focal*cellAspect)
	h := math.Max(1, size/d*proj.focal)
	r := core.NewRect(
		int(math.Round(sx-w/2)),
		int(math.Round(sy-h/2)),
		int(math.Round(w)),
		int(math.Round(h)),
	)
	dst.DrawRect(r, glyph, color)
}

// drawTruck draws the current animation frame centered on the truck.
// Spaces in the sprite are transparent.
func (g *Game) drawTruck(dst *core.Screen, proj projector, pos core.Vec3) {
	sx, sy, d := proj.project(core.V3(pos.X, pos.Y+truckHeight/2, pos.Z))
	if d < nearDepth {
		return
	}

	frame := g.mixer.Frame()
	color := g.models.Truck.ColorValue()
	top := int(math.Round(sy)) - len(frame)/2
	for row, line := range frame {
		runes := []rune(line)
		left := int(math.Round(sx)) - len(runes)/2
		for col, r := range runes {
			if r == ' ' {
				continue
			}
			dst.SetColored(left+col, top+row, r, color)
		}
	}
}

// drawHUD draws the distance counter, speed and controls.
func (g *Game) drawHUD(dst *core.Screen) {
	p := g.world.Progression
	dst.DrawTextColored(2, 0, fmt.Sprintf(" Distance : %d m ", p.Meters()), core.ColorBrightWhite)

	speedText := fmt.Sprintf(" Speed %.2f ", p.Speed)
	dst.DrawTextColored(dst.Width()-len(speedText)-2, 0, speedText, core.ColorCyan)

	controls := "←/→ steer  Enter start  P pause  Q quit"
	dst.DrawTextCentered(dst.Height()-1, controls, core.ColorDarkGray)
}

// drawStartPrompt shows the start message, with the crash notice after a run.
func (g *Game) drawStartPrompt(dst *core.Screen) {
	if g.lastRun != nil {
		drawCenteredMessage(dst,
			"You crashed! Game Over.",
			fmt.Sprintf("Distance: %d m  |  Press ENTER to drive again", g.lastRun.Meters))
		return
	}
	drawCenteredMessage(dst, "CAR DRIVE", "Press ENTER to start")
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	titleLen := len([]rune(title))
	subtitleLen := len([]rune(subtitle))

	boxW := core.Max(titleLen, subtitleLen) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorBrightWhite)

	dst.DrawTextColored(boxX+(boxW-titleLen)/2, boxY+1, title, core.ColorBrightYellow)
	dst.DrawTextColored(boxX+(boxW-subtitleLen)/2, boxY+3, subtitle, core.ColorWhite)
}
