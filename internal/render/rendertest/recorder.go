// Package rendertest provides a render.Context that records calls.
package rendertest

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRestoreUnderflow is returned by Restore without a matching Save.
var ErrRestoreUnderflow = errors.New("restore without save")

// Call is one recorded drawing operation.
type Call struct {
	Op   string
	Args []float64
	Str  string
}

func (c Call) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	for _, a := range c.Args {
		parts = append(parts, fmt.Sprintf("%g", a))
	}
	if c.Str != "" {
		parts = append(parts, c.Str)
	}
	return c.Op + "(" + strings.Join(parts, ",") + ")"
}

// Recorder implements render.Context by appending every call to Calls.
type Recorder struct {
	Calls []Call
	depth int
	// FailRestore makes Restore return an error.
	FailRestore bool
}

func (r *Recorder) add(op string, args ...float64) {
	r.Calls = append(r.Calls, Call{Op: op, Args: args})
}

func (r *Recorder) addStr(op, s string) {
	r.Calls = append(r.Calls, Call{Op: op, Str: s})
}

// Ops returns the operation names in call order.
func (r *Recorder) Ops() []string {
	out := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		out[i] = c.Op
	}
	return out
}

// Find returns the calls with the given op.
func (r *Recorder) Find(op string) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Depth returns the current save depth.
func (r *Recorder) Depth() int { return r.depth }

func (r *Recorder) Save() error {
	r.depth++
	r.add("Save")
	return nil
}

func (r *Recorder) Restore() error {
	r.add("Restore")
	if r.FailRestore {
		return errors.New("restore failed")
	}
	if r.depth == 0 {
		return ErrRestoreUnderflow
	}
	r.depth--
	return nil
}

func (r *Recorder) Translate(x, y float64)            { r.add("Translate", x, y) }
func (r *Recorder) Scale(sx, sy float64)              { r.add("Scale", sx, sy) }
func (r *Recorder) BeginPath()                        { r.add("BeginPath") }
func (r *Recorder) MoveTo(x, y float64)               { r.add("MoveTo", x, y) }
func (r *Recorder) LineTo(x, y float64)               { r.add("LineTo", x, y) }
func (r *Recorder) ClosePath()                        { r.add("ClosePath") }
func (r *Recorder) Arc(x, y, rad, start, end float64) { r.add("Arc", x, y, rad, start, end) }
func (r *Recorder) Rect(x, y, w, h float64)           { r.add("Rect", x, y, w, h) }
func (r *Recorder) Stroke()                           { r.add("Stroke") }
func (r *Recorder) Fill()                             { r.add("Fill") }
func (r *Recorder) SetStrokeStyle(colour string)      { r.addStr("SetStrokeStyle", colour) }
func (r *Recorder) SetFillStyle(colour string)        { r.addStr("SetFillStyle", colour) }
func (r *Recorder) SetLineWidth(w float64)            { r.add("SetLineWidth", w) }
func (r *Recorder) SetLineDash(segments []float64)    { r.add("SetLineDash", segments...) }
func (r *Recorder) FillRect(x, y, w, h float64)       { r.add("FillRect", x, y, w, h) }
func (r *Recorder) ClearRect(x, y, w, h float64)      { r.add("ClearRect", x, y, w, h) }
