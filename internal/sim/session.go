// Package sim implements the house guard simulation: destructors advance on
// houses, the person intercepts them, and the session ends when the
// countdown expires or every house is disabled.
//
// The package is pure game logic driven by Session.Update with an explicit
// delta. It performs no I/O; audio and result archiving are reached through
// the AudioSink and ResultsSink interfaces.
package sim

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/houseguard/internal/config"
	"github.com/vovakirdan/houseguard/internal/core"
)

// Phase is the session lifecycle state. Ended is terminal until Reset.
type Phase int

const (
	PhaseRunning Phase = iota
	PhaseEnded
)

func (p Phase) String() string {
	if p == PhaseEnded {
		return "ended"
	}
	return "running"
}

// Sound is a discrete audio signal emitted by the session.
type Sound int

const (
	SoundCrash Sound = iota
	SoundSessionEnd
)

func (s Sound) String() string {
	if s == SoundSessionEnd {
		return "session_end"
	}
	return "crash"
}

// AudioSink receives fire-and-forget sound signals.
type AudioSink interface {
	Play(Sound)
}

// ResultsSink receives the snapshot of every ended session exactly once.
type ResultsSink interface {
	SessionEnded(Summary)
}

// Status is a read-only view of the session for HUDs and tests.
type Status struct {
	Phase          Phase
	Cause          Cause
	Remaining      time.Duration
	Seconds        int
	Elapsed        time.Duration
	AliveTargets   int
	TotalTargets   int
	LetterSent     bool
	VoteStopUsed   bool
	VoteStopActive bool
}

// Option configures a Session.
type Option func(*Session)

// WithAudio sets the audio collaborator.
func WithAudio(a AudioSink) Option {
	return func(s *Session) { s.audio = a }
}

// WithResults sets the results collaborator.
func WithResults(r ResultsSink) Option {
	return func(s *Session) { s.results = r }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithFlags shares process-wide flags with the session.
func WithFlags(f *Flags) Option {
	return func(s *Session) {
		if f != nil {
			s.flags = f
		}
	}
}

// Session is the controller that owns every entity of one play-through and
// folds all end triggers into a single transition to PhaseEnded.
type Session struct {
	cfg     config.Game
	world   core.Rect
	audio   AudioSink
	results ResultsSink
	logger  *log.Logger
	flags   *Flags

	phase   Phase
	cause   Cause
	elapsed time.Duration
	input   Input

	player  *Player
	agents  []*Agent
	targets []*Target
	sched   *Scheduler
	timer   *Timer
	gateway *Gateway
	summary Summary
}

// New creates a running session from cfg.
func New(cfg config.Game, opts ...Option) *Session {
	s := &Session{
		cfg:    cfg.Clone(),
		logger: log.New(io.Discard),
		flags:  NewFlags(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Reset()
	return s
}

// Reset discards the current play-through and starts a fresh running
// session. It is valid in any phase and keeps Flags.SoundOn.
func (s *Session) Reset() {
	cfg := s.cfg
	s.world = core.NewRect(0, 0, cfg.World.Width, cfg.World.Height)
	s.phase = PhaseRunning
	s.cause = CauseNone
	s.elapsed = 0
	s.input = Input{}
	s.summary = Summary{}

	if s.sched != nil {
		s.sched.CancelAll()
	}
	if s.timer != nil {
		s.timer.Stop()
	}

	s.targets = make([]*Target, len(cfg.Houses))
	for i, h := range cfg.Houses {
		s.targets[i] = NewTarget(i, h.Name, core.NewRect(h.X, h.Y, h.Width, h.Height))
	}

	s.agents = make([]*Agent, len(cfg.Agents))
	for i, a := range cfg.Agents {
		v := VariantActive
		if a.Passive {
			v = VariantPassive
		}
		s.agents[i] = NewAgent(i, a.Name, core.V(a.X, a.Y), cfg.AgentSize.Width, cfg.AgentSize.Height, a.Speed, v)
	}

	s.player = NewPlayer(core.V(cfg.Player.X, cfg.Player.Y), cfg.Player.Width, cfg.Player.Height, cfg.Player.Speed)
	s.sched = NewScheduler(s.Running)
	s.gateway = NewGateway(s.agents, s.sched, cfg.Session.LetterDelay(), cfg.Session.VoteStopDelay())
	s.timer = NewTimer(cfg.Session.Duration(), func() { s.end(CauseTimeUp) })

	s.flags.GameFinish = false
	s.flags.AliveHouses = len(s.targets)

	alive := AliveTargets(s.targets)
	for _, a := range s.agents {
		a.Update(alive)
	}
	s.timer.Start()

	s.logger.Info("session started",
		"targets", len(s.targets),
		"agents", len(s.agents),
		"duration", cfg.Session.Duration(),
	)
}

// Update advances the session by delta. Deferred tasks fire first, then
// bodies move, contacts resolve, and finally agents re-steer against the
// alive targets and the countdown ticks. Nothing changes once ended.
func (s *Session) Update(delta time.Duration) {
	if s.phase == PhaseEnded || delta <= 0 {
		return
	}
	s.elapsed += delta

	s.sched.Advance(delta)
	if s.phase == PhaseEnded {
		return
	}

	s.player.Integrate(delta, s.world, s.targets)
	for _, a := range s.agents {
		a.Integrate(delta)
	}

	s.resolveContacts()
	if s.phase == PhaseEnded {
		return
	}

	s.player.Steer(s.input)
	alive := AliveTargets(s.targets)
	for _, a := range s.agents {
		a.Update(alive)
	}

	s.timer.Update(delta)
}

// resolveContacts applies every contact in detection order. Each delta is
// computed against the state left by the previous ones.
func (s *Session) resolveContacts() {
	for _, c := range DetectContacts(s.player, s.agents, s.targets) {
		d := Resolve(c)
		if d.None() {
			continue
		}

		if d.DisableTarget && c.Target.disable() {
			alive := CountAlive(s.targets)
			s.flags.AliveHouses = alive
			s.logger.Info("target disabled",
				"agent", c.Agent.Name,
				"target", c.Target.Name,
				"alive", alive,
			)
			if d.Crash && s.flags.SoundOn {
				s.play(SoundCrash)
			}
		}

		if d.Retreat && !c.Agent.IsMovingBack() {
			c.Agent.StartMovingBack()
			s.logger.Debug("agent retreating",
				"agent", c.Agent.Name,
				"contact", c.Kind.String(),
			)
		}

		if CountAlive(s.targets) == 0 {
			s.end(CauseAllTargetsDestroyed)
			return
		}
	}
}

// end performs the single transition to PhaseEnded.
func (s *Session) end(cause Cause) {
	if s.phase == PhaseEnded {
		return
	}
	s.phase = PhaseEnded
	s.cause = cause

	s.timer.Stop()
	s.sched.CancelAll()
	for _, a := range s.agents {
		a.Stop()
	}
	s.player.Freeze()

	alive := CountAlive(s.targets)
	s.flags.GameFinish = true
	s.flags.AliveHouses = alive
	s.summary = s.snapshot()

	if s.flags.SoundOn {
		s.play(SoundSessionEnd)
	}
	if s.results != nil {
		s.results.SessionEnded(s.summary)
	}

	s.logger.Info("session ended",
		"cause", cause.String(),
		"alive", alive,
		"total", len(s.targets),
		"elapsed", s.elapsed,
	)
}

func (s *Session) play(snd Sound) {
	if s.audio != nil {
		s.audio.Play(snd)
	}
}

func (s *Session) snapshot() Summary {
	sum := Summary{
		Cause:        s.cause,
		Player:       PlayerSnapshot{Pos: s.player.Pos()},
		AliveCount:   CountAlive(s.targets),
		TotalTargets: len(s.targets),
		Elapsed:      s.elapsed,
		Remaining:    s.timer.Remaining(),
		LetterSent:   s.gateway.LetterSent(),
		VoteStopUsed: s.gateway.VoteStopUsed(),
	}
	for _, t := range AliveTargets(s.targets) {
		sum.AliveTargets = append(sum.AliveTargets, TargetSnapshot{ID: t.ID, Name: t.Name, Bounds: t.Bounds})
	}
	for _, a := range s.agents {
		sum.Agents = append(sum.Agents, AgentSnapshot{
			ID:      a.ID,
			Name:    a.Name,
			Variant: a.Variant,
			Mode:    a.Mode(),
			Stopped: a.IsStopped(),
			Pos:     a.Pos(),
		})
	}
	return sum
}

// SetInput records the movement intent applied on following ticks.
func (s *Session) SetInput(in Input) {
	s.input = in
}

// SendLetter triggers the delayed retreat of every agent.
// It reports false when the session has ended or the letter was sent.
func (s *Session) SendLetter() bool {
	if s.phase == PhaseEnded {
		return false
	}
	if !s.gateway.SendLetter() {
		return false
	}
	s.logger.Info("letter sent", "delay", s.cfg.Session.LetterDelay())
	return true
}

// VoteStop stops every agent for the vote stop delay.
// It reports false when the session has ended or the vote was used.
func (s *Session) VoteStop() bool {
	if s.phase == PhaseEnded {
		return false
	}
	if !s.gateway.VoteStop() {
		return false
	}
	s.logger.Info("vote stop", "delay", s.cfg.Session.VoteStopDelay())
	return true
}

// Status returns the current session view.
func (s *Session) Status() Status {
	return Status{
		Phase:          s.phase,
		Cause:          s.cause,
		Remaining:      s.timer.Remaining(),
		Seconds:        s.timer.Seconds(),
		Elapsed:        s.elapsed,
		AliveTargets:   CountAlive(s.targets),
		TotalTargets:   len(s.targets),
		LetterSent:     s.gateway.LetterSent(),
		VoteStopUsed:   s.gateway.VoteStopUsed(),
		VoteStopActive: s.gateway.VoteStopActive(),
	}
}

// Summary returns the end-of-session report once the session has ended.
func (s *Session) Summary() (Summary, bool) {
	return s.summary, s.phase == PhaseEnded
}

// Running reports whether the session is still in play.
func (s *Session) Running() bool { return s.phase == PhaseRunning }

// Phase returns the lifecycle state.
func (s *Session) Phase() Phase { return s.phase }

// Player returns the person.
func (s *Session) Player() *Player { return s.player }

// Agents returns the destructors in spawn order.
func (s *Session) Agents() []*Agent { return s.agents }

// Targets returns the houses in layout order.
func (s *Session) Targets() []*Target { return s.targets }

// Flags returns the process-wide flags shared with the session.
func (s *Session) Flags() *Flags { return s.flags }

// World returns the playfield bounds.
func (s *Session) World() core.Rect { return s.world }

// Config returns the configuration the session was built from.
func (s *Session) Config() config.Game { return s.cfg }

// Scheduler returns the deferred task queue.
func (s *Session) Scheduler() *Scheduler { return s.sched }
