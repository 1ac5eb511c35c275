// Command inspector is a live grid/agent viewer, adapted from the
// teacher's internal/vis app (gioui.org window event loop under app.Main,
// key-driven playback controls) but rewritten against this domain's
// own types: it renders a core.Map grid plus the robot/ship positions
// recorded in a replay journal (internal/replay), rather than the
// teacher's hex-workspace/CBS-solution model. internal/vis's own
// widget/state/interact packages assumed core.Workspace/core.Solution
// types that no longer exist in this codebase (see DESIGN.md for why
// they were deleted rather than adapted in place).
package main

import (
	"flag"
	"image"
	"image/color"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/widget/material"

	"github.com/paopaochahu09/SmartPort-YYg/internal/core"
	"github.com/paopaochahu09/SmartPort-YYg/internal/protocol"
	"github.com/paopaochahu09/SmartPort-YYg/internal/replay"
)

func main() {
	journalPath := flag.String("journal", "", "path to a replay journal (.jsonl.zst)")
	mapPath := flag.String("map", "", "path to a raw map text file, rows of ./*/#/B characters")
	flag.Parse()

	if *mapPath == "" {
		log.Fatal("inspector: -map is required")
	}
	raw, err := os.ReadFile(*mapPath)
	if err != nil {
		log.Fatalf("inspector: read map: %v", err)
	}
	lines := splitLines(string(raw))
	m, _, err := protocol.DecodeMap(protocol.Init{Rows: len(lines), Cols: len(lines[0]), MapLines: lines})
	if err != nil {
		log.Fatalf("inspector: decode map: %v", err)
	}

	var frames []replay.FrameEntry
	if *journalPath != "" {
		frames, err = replay.ReadAll(*journalPath)
		if err != nil {
			log.Fatalf("inspector: read journal: %v", err)
		}
	}

	go func() {
		w := new(app.Window)
		w.Option(app.Title("SmartPort Inspector"))
		if err := run(w, m, frames); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

const cellPx = 16

var (
	colorSpace    = color.NRGBA{R: 235, G: 235, B: 235, A: 255}
	colorSea      = color.NRGBA{R: 60, G: 110, B: 200, A: 255}
	colorObstacle = color.NRGBA{R: 40, G: 40, B: 40, A: 255}
	colorBerth    = color.NRGBA{R: 210, G: 160, B: 40, A: 255}
	colorRobot    = color.NRGBA{R: 220, G: 30, B: 30, A: 255}
	colorShip     = color.NRGBA{R: 30, G: 200, B: 90, A: 255}
)

type viewer struct {
	m      *core.Map
	frames []replay.FrameEntry
	cursor int
}

func run(w *app.Window, m *core.Map, frames []replay.FrameEntry) error {
	v := &viewer{m: m, frames: frames}
	var ops op.Ops
	th := material.NewTheme()
	_ = th

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			for {
				ev, ok := gtx.Event(key.Filter{})
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
					v.handleKey(ke)
				}
			}
			v.layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

// handleKey mirrors app.go's Space/Left/Right/Home playback bindings,
// scoped down to frame-journal scrubbing.
func (v *viewer) handleKey(e key.Event) {
	switch e.Name {
	case key.NameRightArrow:
		if v.cursor < len(v.frames)-1 {
			v.cursor++
		}
	case key.NameLeftArrow:
		if v.cursor > 0 {
			v.cursor--
		}
	case key.NameHome:
		v.cursor = 0
	}
}

func (v *viewer) layout(gtx layout.Context) layout.Dimensions {
	paint.Fill(gtx.Ops, color.NRGBA{R: 20, G: 20, B: 24, A: 255})

	for r := 0; r < v.m.Rows; r++ {
		for c := 0; c < v.m.Cols; c++ {
			v.drawCell(gtx, r, c)
		}
	}

	if len(v.frames) > 0 {
		f := v.frames[v.cursor]
		for _, p := range f.RobotPos {
			v.drawMarker(gtx, p, colorRobot)
		}
		for _, p := range f.ShipPos {
			v.drawMarker(gtx, p, colorShip)
		}
	}

	return layout.Dimensions{Size: gtx.Constraints.Max}
}

func (v *viewer) drawCell(gtx layout.Context, row, col int) {
	p := core.Point{Row: row, Col: col}
	var col32 color.NRGBA
	switch v.m.GetCell(p) {
	case core.Sea:
		col32 = colorSea
	case core.Obstacle:
		col32 = colorObstacle
	case core.Berth:
		col32 = colorBerth
	default:
		col32 = colorSpace
	}
	rect := image.Rect(col*cellPx, row*cellPx, col*cellPx+cellPx-1, row*cellPx+cellPx-1)
	paint.FillShape(gtx.Ops, col32, clip.Rect(rect).Op())
}

func (v *viewer) drawMarker(gtx layout.Context, p core.Point, col color.NRGBA) {
	rect := image.Rect(p.Col*cellPx+3, p.Row*cellPx+3, p.Col*cellPx+cellPx-3, p.Row*cellPx+cellPx-3)
	paint.FillShape(gtx.Ops, col, clip.Rect(rect).Op())
}
