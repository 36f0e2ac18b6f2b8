package system

// Phase names the priority bands systems register under. The World runs
// systems in ascending priority, so phases run top to bottom each step.
type Phase int

const (
	PhaseInput   Phase = iota * 100 // 0: pointer and external input
	PhaseScript                     // 100: behaviour scripts set velocities
	PhasePhysics                    // 200: integrate, detect, resolve
	PhasePost                       // 300: reactions to resolved state
	PhaseRender                     // 400: snapshot for the render layer
)

func (p Phase) Priority() int { return int(p) }

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhaseScript:
		return "script"
	case PhasePhysics:
		return "physics"
	case PhasePost:
		return "post"
	case PhaseRender:
		return "render"
	}
	return "custom"
}
