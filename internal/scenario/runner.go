package scenario

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/houseguard/internal/config"
	"github.com/vovakirdan/houseguard/internal/sim"
)

// DefaultTick is the fixed simulation step used when Options.Tick is zero.
const DefaultTick = 20 * time.Millisecond

// Options configures a scenario run.
type Options struct {
	Tick    time.Duration
	Logger  *log.Logger
	Audio   sim.AudioSink
	Results sim.ResultsSink
}

// Report describes a finished scenario run.
type Report struct {
	Name     string
	Ticks    int
	Elapsed  time.Duration
	Status   sim.Status
	Summary  *sim.Summary
	Checks   int
	Failures []string
}

// Passed reports whether every expectation held.
func (r Report) Passed() bool {
	return len(r.Failures) == 0
}

type runner struct {
	session  *sim.Session
	tick     time.Duration
	input    sim.Input
	accepted *bool
	report   *Report
}

// Run executes sc against a fresh session built from base plus the
// scenario's config overrides. Failed expectations are collected in the
// report and returned as an error wrapping ErrAssertion.
func Run(ctx context.Context, sc *Scenario, base config.Game, opts Options) (Report, error) {
	report := Report{Name: sc.Name}

	cfg, err := applyConfig(base, sc.Config)
	if err != nil {
		return report, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}

	tick := opts.Tick
	if tick <= 0 {
		tick = DefaultTick
	}

	simOpts := []sim.Option{}
	if opts.Logger != nil {
		simOpts = append(simOpts, sim.WithLogger(opts.Logger))
	}
	if opts.Audio != nil {
		simOpts = append(simOpts, sim.WithAudio(opts.Audio))
	}
	if opts.Results != nil {
		simOpts = append(simOpts, sim.WithResults(opts.Results))
	}

	r := &runner{
		session: sim.New(cfg, simOpts...),
		tick:    tick,
		report:  &report,
	}

	for _, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("scenario %s: %w", sc.Name, err)
		}
		if err := r.exec(ctx, step); err != nil {
			return report, fmt.Errorf("scenario %s: %s: %w", sc.Name, step, err)
		}
	}

	report.Status = r.session.Status()
	report.Elapsed = report.Status.Elapsed
	if sum, ok := r.session.Summary(); ok {
		report.Summary = &sum
	}

	if !report.Passed() {
		return report, fmt.Errorf("%w: %s: %d of %d checks failed:\n  %s",
			ErrAssertion, sc.Name, len(report.Failures), report.Checks, strings.Join(report.Failures, "\n  "))
	}
	return report, nil
}

func (r *runner) exec(ctx context.Context, step Step) error {
	switch step.Kind {
	case "wait":
		return r.advance(ctx, step.Args, nil)

	case "hold":
		keys, err := stringList(step.Args["keys"])
		if err != nil {
			return err
		}
		var in sim.Input
		for _, k := range keys {
			switch strings.ToLower(k) {
			case "left":
				in.Left = true
			case "right":
				in.Right = true
			case "up":
				in.Up = true
			case "down":
				in.Down = true
			default:
				return fmt.Errorf("unknown key %q", k)
			}
		}
		return r.advance(ctx, step.Args, &in)

	case "point":
		x, _ := numberArg(step.Args, "x")
		y, _ := numberArg(step.Args, "y")
		in := sim.Input{PointerActive: true}
		in.Pointer.X, in.Pointer.Y = x, y
		return r.advance(ctx, step.Args, &in)

	case "send_letter":
		ok := r.session.SendLetter()
		r.accepted = &ok
	case "vote_stop":
		ok := r.session.VoteStop()
		r.accepted = &ok
	case "reset":
		r.session.Reset()
		r.accepted = nil

	case "run_until_end":
		seconds, _ := numberArg(step.Args, "seconds")
		limit := r.ticksFor(seconds)
		for i := 0; i < limit && r.session.Running(); i++ {
			if err := r.stepOnce(ctx); err != nil {
				return err
			}
		}
		r.check(step, !r.session.Running(), "session still running after %gs", seconds)

	default:
		if strings.HasPrefix(step.Kind, "expect_") {
			r.expect(step)
			return nil
		}
		return fmt.Errorf("unknown step %q", step.Kind)
	}
	return nil
}

// advance steps the session for the step's duration with in applied, then
// releases the input. A nil in keeps whatever input is current.
func (r *runner) advance(ctx context.Context, args map[string]any, in *sim.Input) error {
	seconds, ok := numberArg(args, "seconds")
	if !ok || seconds < 0 {
		return errors.New("duration must be a non-negative number of seconds")
	}
	if in != nil {
		r.input = *in
		r.session.SetInput(r.input)
		defer func() {
			r.input = sim.Input{}
			r.session.SetInput(r.input)
		}()
	}

	for range r.ticksFor(seconds) {
		if err := r.stepOnce(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (r *runner) stepOnce(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.session.Update(r.tick)
	r.report.Ticks++
	return nil
}

func (r *runner) ticksFor(seconds float64) int {
	d := time.Duration(seconds * float64(time.Second))
	return int(math.Ceil(float64(d) / float64(r.tick)))
}

func (r *runner) check(step Step, ok bool, format string, args ...any) {
	r.report.Checks++
	if !ok {
		r.report.Failures = append(r.report.Failures, step.String()+": "+fmt.Sprintf(format, args...))
	}
}

func (r *runner) expect(step Step) {
	st := r.session.Status()

	switch step.Kind {
	case "expect_alive":
		want, _ := numberArg(step.Args, "value")
		r.check(step, st.AliveTargets == int(want), "alive houses = %d, expected %d", st.AliveTargets, int(want))

	case "expect_phase":
		want, _ := stringArg(step.Args, "value")
		got := strings.ToLower(st.Phase.String())
		r.check(step, got == strings.ToLower(want), "phase = %s, expected %s", got, want)

	case "expect_cause":
		want, _ := stringArg(step.Args, "value")
		r.check(step, st.Cause.String() == strings.ToLower(want), "cause = %s, expected %s", st.Cause, want)

	case "expect_letter_sent":
		want, _ := boolArg(step.Args, "value")
		r.check(step, st.LetterSent == want, "letter sent = %v, expected %v", st.LetterSent, want)

	case "expect_vote_stop_used":
		want, _ := boolArg(step.Args, "value")
		r.check(step, st.VoteStopUsed == want, "vote stop used = %v, expected %v", st.VoteStopUsed, want)

	case "expect_accepted":
		want, _ := boolArg(step.Args, "value")
		if r.accepted == nil {
			r.check(step, false, "no intervention to check")
			return
		}
		r.check(step, *r.accepted == want, "last intervention accepted = %v, expected %v", *r.accepted, want)

	case "expect_agent":
		name, _ := stringArg(step.Args, "name")
		for _, a := range r.session.Agents() {
			if a.Name == name {
				r.checkAgent(step, a)
				return
			}
		}
		r.check(step, false, "no agent named %q", name)

	case "expect_all_agents":
		for _, a := range r.session.Agents() {
			r.checkAgent(step, a)
		}

	default:
		r.check(step, false, "unknown expectation")
	}
}

func (r *runner) checkAgent(step Step, a *sim.Agent) {
	if want, ok := stringArg(step.Args, "mode"); ok {
		r.check(step, a.Mode().String() == strings.ToLower(want), "%s mode = %s, expected %s", a.Name, a.Mode(), want)
	}
	if want, ok := boolArg(step.Args, "stopped"); ok {
		r.check(step, a.IsStopped() == want, "%s stopped = %v, expected %v", a.Name, a.IsStopped(), want)
	}
	if want, ok := boolArg(step.Args, "moving"); ok {
		moving := !a.Vel().IsZero()
		r.check(step, moving == want, "%s moving = %v, expected %v", a.Name, moving, want)
	}
	if want, ok := stringArg(step.Args, "target"); ok {
		got := ""
		if t := a.Target(); t != nil {
			got = t.Name
		}
		r.check(step, got == want, "%s target = %q, expected %q", a.Name, got, want)
	}
}
