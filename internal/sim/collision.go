package sim

// PairKind identifies the two entity kinds involved in a contact.
type PairKind int

const (
	PairAgentTarget PairKind = iota
	PairPlayerAgent
	PairPlayerTarget
)

func (k PairKind) String() string {
	switch k {
	case PairAgentTarget:
		return "agent-target"
	case PairPlayerAgent:
		return "player-agent"
	case PairPlayerTarget:
		return "player-target"
	default:
		return "unknown"
	}
}

// Contact is one overlapping pair detected in a tick.
// Agent is nil for PairPlayerTarget, Target is nil for PairPlayerAgent.
type Contact struct {
	Kind   PairKind
	Agent  *Agent
	Target *Target
}

// Delta is the state change a contact produces.
type Delta struct {
	DisableTarget bool
	Retreat       bool
	Crash         bool
}

// None reports whether the delta changes nothing.
func (d Delta) None() bool {
	return !d.DisableTarget && !d.Retreat && !d.Crash
}

// Resolve computes the effect of a contact from the current entity state.
// It never mutates its inputs.
func Resolve(c Contact) Delta {
	switch c.Kind {
	case PairAgentTarget:
		if c.Agent == nil || c.Target == nil {
			return Delta{}
		}
		if c.Agent.IsMovingBack() || !c.Target.Alive() {
			return Delta{}
		}
		if c.Agent.Variant == VariantPassive {
			return Delta{Retreat: true}
		}
		return Delta{DisableTarget: true, Retreat: true, Crash: true}

	case PairPlayerAgent:
		if c.Agent == nil {
			return Delta{}
		}
		if c.Agent.IsStopped() || c.Agent.IsMovingBack() {
			return Delta{}
		}
		return Delta{Retreat: true}

	default:
		return Delta{}
	}
}

// DetectContacts lists every overlapping pair. Agent↔Target pairs come
// first in agent order then layout order, followed by Player↔Agent and
// Player↔Target pairs. Each pair appears at most once.
func DetectContacts(p *Player, agents []*Agent, targets []*Target) []Contact {
	var contacts []Contact
	for _, a := range agents {
		ab := a.Bounds()
		for _, t := range targets {
			if ab.Intersects(t.Bounds) {
				contacts = append(contacts, Contact{Kind: PairAgentTarget, Agent: a, Target: t})
			}
		}
	}
	if p == nil {
		return contacts
	}
	pb := p.Bounds()
	for _, a := range agents {
		if pb.Intersects(a.Bounds()) {
			contacts = append(contacts, Contact{Kind: PairPlayerAgent, Agent: a})
		}
	}
	for _, t := range targets {
		if pb.Intersects(t.Bounds) {
			contacts = append(contacts, Contact{Kind: PairPlayerTarget, Target: t})
		}
	}
	return contacts
}
