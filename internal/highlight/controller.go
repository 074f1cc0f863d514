// Package highlight drives the expand/highlight/scroll interaction for a
// rendered outline. State that used to live in ad-hoc per-node timers is
// owned by one Controller so a view can tear everything down in one call.
package highlight

import (
	"strings"
	"sync"
	"time"

	"inquest-cli/internal/model"
)

const (
	// DefaultVisibleDepth is the nesting depth below which nodes render
	// expanded even without a highlight target.
	DefaultVisibleDepth = 2

	// DefaultSettleDelay is how long to wait before scrolling the lit node
	// into view, giving the just-expanded ancestor chain time to lay out.
	DefaultSettleDelay = 150 * time.Millisecond

	// DefaultDecayWindow is how long the lit node stays lit.
	DefaultDecayWindow = 2500 * time.Millisecond
)

// NodePlan tells the renderer what to do with one node.
type NodePlan struct {
	Expanded bool `json:"expanded"`
	Lit      bool `json:"lit"`
}

// RenderPlan maps node id to its render decision.
type RenderPlan map[string]NodePlan

type nodeTimers struct {
	scroll *time.Timer
	decay  *time.Timer
}

// Controller computes render plans and owns the two timers (scroll settle,
// highlight decay) attached to the current highlight target. The lit state
// decays exactly once per target; re-planning with the same target does not
// restart the sequence, re-planning with a new target cancels the old one and
// runs the entry sequence for the new node.
type Controller struct {
	mu       sync.Mutex
	settle   time.Duration
	decay    time.Duration
	scrollFn func(nodeID string)
	onChange func()

	target   string
	faded    map[string]bool
	timers   map[string]*nodeTimers
	disposed bool
}

type Option func(*Controller)

// WithDelays overrides the settle delay and decay window. The scroll must
// land while the node is still lit, so settle is clamped below decay.
func WithDelays(settle, decay time.Duration) Option {
	return func(c *Controller) {
		if decay <= 0 {
			decay = DefaultDecayWindow
		}
		if settle <= 0 || settle >= decay {
			settle = decay / 2
		}
		c.settle = settle
		c.decay = decay
	}
}

// WithScrollFunc sets the callback fired (once per target) when the lit node
// should be scrolled into view.
func WithScrollFunc(fn func(nodeID string)) Option {
	return func(c *Controller) { c.scrollFn = fn }
}

// WithOnChange sets a hook fired when a timer changes controller state, so a
// render loop can repaint.
func WithOnChange(fn func()) Option {
	return func(c *Controller) { c.onChange = fn }
}

func New(opts ...Option) *Controller {
	c := &Controller{
		settle: DefaultSettleDelay,
		decay:  DefaultDecayWindow,
		faded:  map[string]bool{},
		timers: map[string]*nodeTimers{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Plan walks the forest and decides, per node id, whether to render it
// expanded and whether to render it lit. Passing a new non-empty targetID
// starts that node's scroll+decay sequence as a side effect.
func (c *Controller) Plan(nodes []model.OutlineNode, targetID string) RenderPlan {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return RenderPlan{}
	}

	targetID = strings.TrimSpace(targetID)
	if targetID != c.target {
		c.retargetLocked(targetID)
	}

	plan := RenderPlan{}
	ancestors := ancestorsOf(nodes, c.target)

	var walk func(n model.OutlineNode, depth int)
	walk = func(n model.OutlineNode, depth int) {
		if strings.TrimSpace(n.ID) != "" {
			expanded := depth < DefaultVisibleDepth
			if ancestors[n.ID] {
				expanded = true
			}
			lit := c.target != "" && n.ID == c.target && !c.faded[c.target]
			plan[n.ID] = NodePlan{Expanded: expanded, Lit: lit}
		}
		for _, ch := range n.Children {
			walk(ch, depth+1)
		}
	}
	for _, n := range nodes {
		walk(n, 0)
	}
	return plan
}

// StaticPlan computes a render plan without timer state: the target is lit
// and its ancestor chain expanded, as a Controller would render it at the
// moment of arrival. Useful for one-shot consumers with no decay sequence.
func StaticPlan(nodes []model.OutlineNode, targetID string) RenderPlan {
	targetID = strings.TrimSpace(targetID)
	plan := RenderPlan{}
	ancestors := ancestorsOf(nodes, targetID)

	var walk func(n model.OutlineNode, depth int)
	walk = func(n model.OutlineNode, depth int) {
		if strings.TrimSpace(n.ID) != "" {
			expanded := depth < DefaultVisibleDepth
			if ancestors[n.ID] {
				expanded = true
			}
			plan[n.ID] = NodePlan{Expanded: expanded, Lit: targetID != "" && n.ID == targetID}
		}
		for _, ch := range n.Children {
			walk(ch, depth+1)
		}
	}
	for _, n := range nodes {
		walk(n, 0)
	}
	return plan
}

// Target returns the current highlight target id ("" when none).
func (c *Controller) Target() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

// Faded reports whether the node was the highlight target and its decay
// window has elapsed.
func (c *Controller) Faded(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.faded[id]
}

// Dispose cancels every pending timer. Timers that already fired but have
// not run yet become no-ops; no state changes after Dispose.
func (c *Controller) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disposed = true
	for id := range c.timers {
		c.cancelTimersLocked(id)
	}
}

func (c *Controller) retargetLocked(targetID string) {
	if c.target != "" {
		// Reset the previous target to steady state.
		c.cancelTimersLocked(c.target)
		delete(c.faded, c.target)
	}
	c.target = targetID
	if targetID == "" {
		return
	}

	nt := &nodeTimers{}
	nt.scroll = time.AfterFunc(c.settle, func() { c.fireScroll(targetID) })
	nt.decay = time.AfterFunc(c.decay, func() { c.fireDecay(targetID) })
	c.timers[targetID] = nt
}

func (c *Controller) cancelTimersLocked(id string) {
	nt := c.timers[id]
	if nt == nil {
		return
	}
	if nt.scroll != nil {
		nt.scroll.Stop()
	}
	if nt.decay != nil {
		nt.decay.Stop()
	}
	delete(c.timers, id)
}

func (c *Controller) fireScroll(id string) {
	c.mu.Lock()
	if c.disposed || c.target != id {
		c.mu.Unlock()
		return
	}
	fn := c.scrollFn
	c.mu.Unlock()
	if fn != nil {
		fn(id)
	}
}

func (c *Controller) fireDecay(id string) {
	c.mu.Lock()
	if c.disposed || c.target != id || c.faded[id] {
		c.mu.Unlock()
		return
	}
	c.faded[id] = true
	delete(c.timers, id)
	fn := c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// ancestorsOf returns the ids of the strict ancestors of target, i.e. every
// node whose descendant set contains the target id.
func ancestorsOf(nodes []model.OutlineNode, target string) map[string]bool {
	out := map[string]bool{}
	if target == "" {
		return out
	}
	var contains func(n model.OutlineNode) bool
	contains = func(n model.OutlineNode) bool {
		if n.ID == target {
			return true
		}
		found := false
		for _, ch := range n.Children {
			if contains(ch) {
				found = true
			}
		}
		if found && n.ID != "" && n.ID != target {
			out[n.ID] = true
		}
		return found || n.ID == target
	}
	for _, n := range nodes {
		contains(n)
	}
	return out
}
