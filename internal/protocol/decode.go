package protocol

import (
	"fmt"

	"github.com/paopaochahu09/SmartPort-YYg/internal/core"
)

// DecodeMap turns the Init payload's map characters into a Map plus
// the robot spawn points found ('A', spec §6), berths are carved in
// separately via BerthSpec since a single '.'-class character can't
// distinguish one berth id from another.
func DecodeMap(init Init) (*core.Map, []core.Point, error) {
	if len(init.MapLines) != init.Rows {
		return nil, nil, fmt.Errorf("protocol: expected %d map rows, got %d", init.Rows, len(init.MapLines))
	}
	m := core.NewMap(init.Rows, init.Cols)
	var spawns []core.Point
	for r, line := range init.MapLines {
		if len(line) != init.Cols {
			return nil, nil, fmt.Errorf("protocol: row %d has %d cols, want %d", r, len(line), init.Cols)
		}
		for c, ch := range line {
			p := core.Point{Row: r, Col: c}
			switch ch {
			case '.':
				m.SetCell(p, core.Space)
			case '*':
				m.SetCell(p, core.Sea)
			case '#':
				m.SetCell(p, core.Obstacle)
			case 'A':
				m.SetCell(p, core.Space)
				spawns = append(spawns, p)
			case 'B':
				m.SetCell(p, core.Berth)
			default:
				return nil, nil, fmt.Errorf("protocol: unknown map char %q at (%d,%d)", ch, r, c)
			}
		}
	}
	for _, b := range init.Berths {
		anchor := core.Point{Row: b.Y, Col: b.X}
		for dr := 0; dr < 4; dr++ {
			for dc := 0; dc < 4; dc++ {
				cell := anchor.Add(core.Point{Row: dr, Col: dc})
				if m.InBounds(cell) {
					m.SetCell(cell, core.Berth)
				}
			}
		}
	}
	return m, spawns, nil
}

// BuildBerths converts decoded BerthSpecs into core.Berth values.
func BuildBerths(specs []BerthSpec) []*core.Berth {
	out := make([]*core.Berth, 0, len(specs))
	for _, s := range specs {
		out = append(out, core.NewBerth(s.ID, core.Point{Row: s.Y, Col: s.X}, s.DockingDelay, s.LoadingVelocity))
	}
	return out
}
