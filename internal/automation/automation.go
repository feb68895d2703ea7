// Package automation runs Lua scripts that schedule parameter changes for
// an offline render.
//
// A script sees the globals sampleRate, frames and duration and calls:
//
//	at(seconds, module, param, value)
//	atFrame(frame, module, param, value)
//	ramp(from, to, module, param, startValue, endValue [, steps])
//
// ramp emits steps+1 evenly spaced events; steps defaults to one per
// 10 ms. print writes to the configured logger.
package automation

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
	lua "github.com/yuin/gopher-lua"

	"github.com/cwbudde/algo-master/engine"
)

// MaxEvents bounds the number of events a script may produce.
const MaxEvents = 1 << 20

// ErrTooManyEvents is returned when a script exceeds MaxEvents.
var ErrTooManyEvents = errors.New("automation: too many events")

// Options describes the render the script automates.
type Options struct {
	SampleRate float64
	Frames     int64
	Log        logrus.FieldLogger
}

type runner struct {
	opts     Options
	name     string
	events   []engine.Event
	overflow bool
}

// RunFile executes the script at path.
func RunFile(ctx context.Context, path string, opts Options) ([]engine.Event, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("automation: %w", err)
	}
	return Run(ctx, path, string(src), opts)
}

// Run executes src and returns its events ordered by frame. Events at the
// same frame keep script order.
func Run(ctx context.Context, name, src string, opts Options) ([]engine.Event, error) {
	if opts.SampleRate <= 0 {
		return nil, fmt.Errorf("automation: invalid sample rate %g", opts.SampleRate)
	}
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}

	r := &runner{opts: opts, name: name}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	if err := openLibs(L); err != nil {
		return nil, fmt.Errorf("automation: %w", err)
	}
	r.install(L)
	L.SetContext(ctx)

	fn, err := L.Load(strings.NewReader(src), name)
	if err != nil {
		return nil, fmt.Errorf("automation: %w", err)
	}
	L.Push(fn)
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("automation: %s: %w", name, ctx.Err())
		}
		if r.overflow {
			return nil, fmt.Errorf("%w (%s)", ErrTooManyEvents, name)
		}
		return nil, fmt.Errorf("automation: %w", err)
	}

	slices.SortStableFunc(r.events, func(a, b engine.Event) int {
		return cmp.Compare(a.Frame, b.Frame)
	})

	opts.Log.WithFields(logrus.Fields{
		"script": name,
		"events": len(r.events),
	}).Debug("automation script done")

	return r.events, nil
}

func openLibs(L *lua.LState) error {
	libs := []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	}
	for _, lib := range libs {
		err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(lib.fn),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name))
		if err != nil {
			return err
		}
	}

	// Scripts only compute events; they do not touch the filesystem.
	for _, name := range []string{"dofile", "loadfile", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
	return nil
}

func (r *runner) install(L *lua.LState) {
	L.SetGlobal("sampleRate", lua.LNumber(r.opts.SampleRate))
	L.SetGlobal("frames", lua.LNumber(r.opts.Frames))
	L.SetGlobal("duration", lua.LNumber(float64(r.opts.Frames)/r.opts.SampleRate))

	L.SetGlobal("at", L.NewFunction(r.at))
	L.SetGlobal("atFrame", L.NewFunction(r.atFrame))
	L.SetGlobal("ramp", L.NewFunction(r.ramp))
	L.SetGlobal("print", L.NewFunction(r.print))
}

func (r *runner) frameOf(L *lua.LState, arg int, seconds float64) int64 {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		L.ArgError(arg, "time must be a finite, non-negative number of seconds")
	}
	return int64(math.Round(seconds * r.opts.SampleRate))
}

func (r *runner) push(L *lua.LState, ev engine.Event) {
	if len(r.events) >= MaxEvents {
		r.overflow = true
		L.RaiseError("%s", ErrTooManyEvents.Error())
	}
	r.events = append(r.events, ev)
}

func checkValue(L *lua.LState, arg int) float64 {
	v := float64(L.CheckNumber(arg))
	if math.IsNaN(v) || math.IsInf(v, 0) {
		L.ArgError(arg, "value must be finite")
	}
	return v
}

func (r *runner) at(L *lua.LState) int {
	frame := r.frameOf(L, 1, float64(L.CheckNumber(1)))
	r.push(L, engine.Event{
		Frame:  frame,
		Module: L.CheckString(2),
		Param:  L.CheckString(3),
		Value:  checkValue(L, 4),
	})
	return 0
}

func (r *runner) atFrame(L *lua.LState) int {
	frame := L.CheckInt64(1)
	if frame < 0 {
		L.ArgError(1, "frame must be non-negative")
	}
	r.push(L, engine.Event{
		Frame:  frame,
		Module: L.CheckString(2),
		Param:  L.CheckString(3),
		Value:  checkValue(L, 4),
	})
	return 0
}

func (r *runner) ramp(L *lua.LState) int {
	start := float64(L.CheckNumber(1))
	end := float64(L.CheckNumber(2))
	first := r.frameOf(L, 1, start)
	last := r.frameOf(L, 2, end)
	if last < first {
		L.ArgError(2, "ramp end precedes its start")
	}
	module := L.CheckString(3)
	param := L.CheckString(4)
	from := checkValue(L, 5)
	to := checkValue(L, 6)

	steps := L.OptInt(7, max(1, int(math.Ceil((end-start)*100))))
	if steps < 1 {
		L.ArgError(7, "steps must be at least 1")
	}
	if len(r.events)+steps >= MaxEvents {
		r.overflow = true
		L.RaiseError("%s", ErrTooManyEvents.Error())
	}

	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		r.push(L, engine.Event{
			Frame:  first + int64(math.Round(t*float64(last-first))),
			Module: module,
			Param:  param,
			Value:  from + t*(to-from),
		})
	}
	return 0
}

func (r *runner) print(L *lua.LState) int {
	parts := make([]string, L.GetTop())
	for i := range parts {
		parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
	}
	r.opts.Log.WithField("script", r.name).Info(strings.Join(parts, "\t"))
	return 0
}
