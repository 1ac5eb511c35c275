// Package protocol implements the stdio frame codec of spec.md §6: a
// bufio.Scanner-driven reader/writer pair grounded in
// original_source/gameManager.cpp's initializeGame/processFrameData/
// outputCommands. Thin by design (spec.md lists this surface as "out
// of scope, interfaces only") — no retry, no backpressure, no
// alternate wire formats, just enough to drive cmd/smartport and the
// integration tests.
package protocol

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/paopaochahu09/SmartPort-YYg/internal/core"
)

// Init is the one-time ingest payload: map characters, berth specs,
// and ship capacity (spec §6 "Initial phase").
type Init struct {
	Rows, Cols int
	MapLines   []string // one row per line, raw characters
	Berths     []BerthSpec
	ShipCap    int
}

type BerthSpec struct {
	ID                     core.BerthID
	X, Y                   int
	DockingDelay           int
	LoadingVelocity        int
}

// FrameIn is one tick's ingest payload (spec §6 "Each tick").
type FrameIn struct {
	FrameID int
	Money   int
	NewGoods []GoodsSpec
	Robots   []RobotSpec
	Ships    []ShipSpec
}

type GoodsSpec struct {
	X, Y, Value int
}

type RobotSpec struct {
	Carrying    bool
	X, Y        int
	MotionState int
}

type ShipSpec struct {
	State   int
	BerthID int
}

// Reader scans the stdio protocol, grounded in gameManager.cpp's
// cin>> token sequence translated into a bufio.Scanner word split.
type Reader struct {
	sc *bufio.Scanner
}

func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	sc.Split(bufio.ScanWords)
	return &Reader{sc: sc}
}

func (r *Reader) token() (string, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.sc.Text(), nil
}

func (r *Reader) int() (int, error) {
	t, err := r.token()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(t)
	if err != nil {
		return 0, fmt.Errorf("protocol: expected int, got %q: %w", t, err)
	}
	return n, nil
}

// ReadInit consumes the initial map/berth/capacity phase and returns
// the decoded Init, having already read a trailing "OK" line.
func (r *Reader) ReadInit(rows, cols, berthCount int) (Init, error) {
	init := Init{Rows: rows, Cols: cols}
	for row := 0; row < rows; row++ {
		line, err := r.token()
		if err != nil {
			return init, err
		}
		init.MapLines = append(init.MapLines, line)
	}
	for i := 0; i < berthCount; i++ {
		var spec BerthSpec
		id, err := r.int()
		if err != nil {
			return init, err
		}
		x, err := r.int()
		if err != nil {
			return init, err
		}
		y, err := r.int()
		if err != nil {
			return init, err
		}
		delay, err := r.int()
		if err != nil {
			return init, err
		}
		vel, err := r.int()
		if err != nil {
			return init, err
		}
		spec.ID, spec.X, spec.Y, spec.DockingDelay, spec.LoadingVelocity = core.BerthID(id), x, y, delay, vel
		init.Berths = append(init.Berths, spec)
	}
	cap, err := r.int()
	if err != nil {
		return init, err
	}
	init.ShipCap = cap

	if err := r.expectOK(); err != nil {
		return init, err
	}
	return init, nil
}

func (r *Reader) expectOK() error {
	tok, err := r.token()
	if err != nil {
		return err
	}
	if !strings.EqualFold(tok, "OK") {
		return fmt.Errorf("protocol: expected OK, got %q", tok)
	}
	return nil
}

// ReadFrame consumes one tick's payload. robotCount/shipCount are
// fixed for the run (spec §6 constants).
func (r *Reader) ReadFrame(robotCount, shipCount int) (FrameIn, error) {
	var f FrameIn
	frameID, err := r.int()
	if err != nil {
		return f, err
	}
	money, err := r.int()
	if err != nil {
		return f, err
	}
	f.FrameID, f.Money = frameID, money

	newCount, err := r.int()
	if err != nil {
		return f, err
	}
	for i := 0; i < newCount; i++ {
		x, err := r.int()
		if err != nil {
			return f, err
		}
		y, err := r.int()
		if err != nil {
			return f, err
		}
		v, err := r.int()
		if err != nil {
			return f, err
		}
		f.NewGoods = append(f.NewGoods, GoodsSpec{X: x, Y: y, Value: v})
	}

	for i := 0; i < robotCount; i++ {
		carrying, err := r.int()
		if err != nil {
			return f, err
		}
		x, err := r.int()
		if err != nil {
			return f, err
		}
		y, err := r.int()
		if err != nil {
			return f, err
		}
		state, err := r.int()
		if err != nil {
			return f, err
		}
		f.Robots = append(f.Robots, RobotSpec{Carrying: carrying != 0, X: x, Y: y, MotionState: state})
	}

	for i := 0; i < shipCount; i++ {
		state, err := r.int()
		if err != nil {
			return f, err
		}
		berth, err := r.int()
		if err != nil {
			return f, err
		}
		f.Ships = append(f.Ships, ShipSpec{State: state, BerthID: berth})
	}

	if err := r.expectOK(); err != nil {
		return f, err
	}
	return f, nil
}
