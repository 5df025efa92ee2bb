package interact

// Pos is a pointer position in the drawing surface's coordinate space.
// The controller never interprets coordinates; it only records them so the
// renderer can draw the rubber-band edge.
type Pos struct {
	X, Y float64
}

// State enumerates the controller's machine states.
type State int

const (
	// StateIdle means no drag session is active.
	StateIdle State = iota
	// StateDragging means a session is active between one pointer-down
	// and the next terminal pointer-up or cancel.
	StateDragging
)

// Session is the transient value held while dragging. It exists only
// between pointer-down and the terminal pointer-up/cancel.
type Session struct {
	Origin      string
	OriginPos   Pos
	CurrentPos  Pos
	HoverTarget string // empty when no drop candidate is hovered
}

// Options configures a Controller.
type Options struct {
	// DefaultBranch can never be a drag origin (it has no parent to change).
	DefaultBranch string

	// IsTentative reports whether a node id belongs to the tentative
	// overlay. Tentative nodes are neither drag origins nor drop targets.
	// A nil func treats every node as real.
	IsTentative func(id string) bool

	// OnCommit receives exactly one call per committed drag: target is
	// the proposed new parent of origin.
	OnCommit func(origin, target string)
}

// Controller is the drag gesture state machine. It is driven by the host
// UI thread's pointer-event ordering and is not safe for concurrent use.
type Controller struct {
	opts    Options
	enabled bool
	session *Session
}

// NewController creates an idle controller. Interactive-edit mode starts
// disabled; call SetEnabled(true) before pointer events should be honored.
func NewController(opts Options) *Controller {
	return &Controller{opts: opts}
}

// SetEnabled toggles interactive-edit mode. Disabling mid-drag cancels the
// active session without emitting a commit.
func (c *Controller) SetEnabled(enabled bool) {
	c.enabled = enabled
	if !enabled {
		c.session = nil
	}
}

// State returns the current machine state.
func (c *Controller) State() State {
	if c.session != nil {
		return StateDragging
	}
	return StateIdle
}

// Session returns a copy of the active drag session, if any.
func (c *Controller) Session() (Session, bool) {
	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

// isTentative consults Options.IsTentative; a nil func treats every node
// as real.
func (c *Controller) isTentative(id string) bool {
	if c.opts.IsTentative == nil {
		return false
	}
	return c.opts.IsTentative(id)
}

// OnPointerDown starts a drag from the node's handle. Ignored when edit
// mode is disabled, when a session is already active, or when the node is
// ineligible (default branch or tentative).
func (c *Controller) OnPointerDown(nodeID string, pos Pos) {
	if !c.enabled || c.session != nil {
		return
	}
	if nodeID == "" || nodeID == c.opts.DefaultBranch || c.isTentative(nodeID) {
		return
	}
	c.session = &Session{Origin: nodeID, OriginPos: pos, CurrentPos: pos}
}

// OnPointerMove updates the tracked pointer position while dragging.
func (c *Controller) OnPointerMove(pos Pos) {
	if c.session == nil {
		return
	}
	c.session.CurrentPos = pos
}

// OnPointerEnterNode marks nodeID as the drop candidate while dragging.
// The origin itself and tentative nodes are not eligible targets.
func (c *Controller) OnPointerEnterNode(nodeID string) {
	if c.session == nil {
		return
	}
	if nodeID == c.session.Origin || c.isTentative(nodeID) {
		return
	}
	c.session.HoverTarget = nodeID
}

// OnPointerLeaveNode clears the drop candidate when the pointer leaves it.
// Leaving any other node has no effect; the session stays active.
func (c *Controller) OnPointerLeaveNode(nodeID string) {
	if c.session == nil {
		return
	}
	if c.session.HoverTarget == nodeID {
		c.session.HoverTarget = ""
	}
}

// OnPointerUp terminates the session. When a drop candidate is set and
// differs from the origin, OnCommit fires exactly once with
// (origin, target); otherwise the session ends as a no-op.
func (c *Controller) OnPointerUp() {
	s := c.session
	c.session = nil
	if s == nil {
		return
	}
	if s.HoverTarget == "" || s.HoverTarget == s.Origin {
		return
	}
	if c.opts.OnCommit != nil {
		c.opts.OnCommit(s.Origin, s.HoverTarget)
	}
}

// OnPointerLeaveSurface cancels the session unconditionally, with no
// commit. Also appropriate for component teardown.
func (c *Controller) OnPointerLeaveSurface() {
	c.session = nil
}
