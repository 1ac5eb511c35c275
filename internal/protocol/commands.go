package protocol

import (
	"bufio"
	"fmt"
	"io"

	"github.com/paopaochahu09/SmartPort-YYg/internal/core"
)

// Dir is a robot move direction (spec §6: 0/1/2/3 = right/left/forward/back).
type Dir int

const (
	DirRight Dir = iota
	DirLeft
	DirForward
	DirBack
)

// RotDir is a ship rotation direction (spec §6: 0/1 = CW/CCW).
type RotDir int

const (
	RotCW RotDir = iota
	RotCCW
)

// Command is one emitted instruction; only the fields its Kind uses are
// meaningful (e.g. RobotID and Dir for a move).
type Command struct {
	Kind CommandKind

	RobotID core.RobotID
	ShipID  core.ShipID
	Dir     Dir
	Rot     RotDir
	X, Y    int
}

type CommandKind int

const (
	CmdMove CommandKind = iota
	CmdGet
	CmdPull
	CmdShip
	CmdRot
	CmdBerth
	CmdDept
	CmdLbot
	CmdLboat
)

func Move(r core.RobotID, d Dir) Command  { return Command{Kind: CmdMove, RobotID: r, Dir: d} }
func Get(r core.RobotID) Command          { return Command{Kind: CmdGet, RobotID: r} }
func Pull(r core.RobotID) Command         { return Command{Kind: CmdPull, RobotID: r} }
func Ship(s core.ShipID) Command          { return Command{Kind: CmdShip, ShipID: s} }
func Rot(s core.ShipID, k RotDir) Command { return Command{Kind: CmdRot, ShipID: s, Rot: k} }
func Berth(s core.ShipID) Command         { return Command{Kind: CmdBerth, ShipID: s} }
func Dept(s core.ShipID) Command          { return Command{Kind: CmdDept, ShipID: s} }
func Lbot(x, y int) Command               { return Command{Kind: CmdLbot, X: x, Y: y} }
func Lboat(x, y int) Command              { return Command{Kind: CmdLboat, X: x, Y: y} }

// Writer emits commands per frame, grounded in gameManager.cpp's
// outputCommands, which prints one line per queued command followed
// by a trailing "OK".
type Writer struct {
	w *bufio.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteFrame emits every command (any order, per spec §6) and the
// closing "OK", then flushes.
func (w *Writer) WriteFrame(cmds []Command) error {
	for _, c := range cmds {
		if err := w.writeOne(c); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w.w, "OK"); err != nil {
		return err
	}
	return w.w.Flush()
}

func (w *Writer) writeOne(c Command) error {
	var err error
	switch c.Kind {
	case CmdMove:
		_, err = fmt.Fprintf(w.w, "move %d %d\n", c.RobotID, c.Dir)
	case CmdGet:
		_, err = fmt.Fprintf(w.w, "get %d\n", c.RobotID)
	case CmdPull:
		_, err = fmt.Fprintf(w.w, "pull %d\n", c.RobotID)
	case CmdShip:
		_, err = fmt.Fprintf(w.w, "ship %d\n", c.ShipID)
	case CmdRot:
		_, err = fmt.Fprintf(w.w, "rot %d %d\n", c.ShipID, c.Rot)
	case CmdBerth:
		_, err = fmt.Fprintf(w.w, "berth %d\n", c.ShipID)
	case CmdDept:
		_, err = fmt.Fprintf(w.w, "dept %d\n", c.ShipID)
	case CmdLbot:
		_, err = fmt.Fprintf(w.w, "lbot %d %d\n", c.X, c.Y)
	case CmdLboat:
		_, err = fmt.Fprintf(w.w, "lboat %d %d\n", c.X, c.Y)
	default:
		return fmt.Errorf("protocol: unknown command kind %d", c.Kind)
	}
	return err
}
