package patrol

// Event is what happened during a single guard step.
type Event int

const (
	EventNone   Event = iota
	EventMoved        // Guard advanced into the next cell
	EventTurned       // Guard was blocked and turned clockwise in place
	EventExited       // Guard walked off the map
	EventLooped       // Guard repeated a (position, direction) departure
)

// String returns the string representation of an event.
func (e Event) String() string {
	switch e {
	case EventMoved:
		return "moved"
	case EventTurned:
		return "turned"
	case EventExited:
		return "exited"
	case EventLooped:
		return "looped"
	default:
		return "none"
	}
}

// Terminal reports whether the event ends the patrol.
func (e Event) Terminal() bool {
	return e == EventExited || e == EventLooped
}

// StepResult describes a single step.
type StepResult struct {
	Step   int    // Steps taken after this one
	Event  Event  // What happened
	Walker Walker // Guard state after the step
}

// Patrol replays the guard's movement rule one step at a time on a grid,
// marking departure flags in place.
type Patrol struct {
	Grid   *Grid
	Walker Walker
	Steps  int
	Ended  Event // EventNone while the guard is still walking

	seen  []bool
	count int
}

// NewPatrol creates a patrol for the guard at start. The grid's departure
// flags are updated as the guard walks; pass a copy to keep the original
// untouched.
func NewPatrol(g *Grid, start Walker) *Patrol {
	p := &Patrol{
		Grid:   g,
		Walker: start,
		seen:   make([]bool, g.Size()),
	}
	p.visit(start.Pos)
	return p
}

func (p *Patrol) visit(pos int) {
	if !p.seen[pos] {
		p.seen[pos] = true
		p.count++
	}
}

// Done reports whether the patrol has ended.
func (p *Patrol) Done() bool {
	return p.Ended != EventNone
}

// Distinct returns the number of distinct positions visited so far.
func (p *Patrol) Distinct() int {
	return p.count
}

// Seen reports whether the guard has stood on pos.
func (p *Patrol) Seen(pos int) bool {
	return p.seen[pos]
}

// Step advances the guard by one step.
//
// Step rules:
//  1. If the guard already departed this cell facing this way: loop, stop
//  2. Mark the departure
//  3. If the next cell is off the map: exit, stop
//  4. If the next cell is a wall or obstacle: turn clockwise, stay put
//  5. Otherwise move into the next cell
func (p *Patrol) Step() StepResult {
	if p.Done() {
		return StepResult{Step: p.Steps, Event: p.Ended, Walker: p.Walker}
	}

	w := p.Walker
	g := p.Grid
	p.Steps++

	if g.Visited(w.Pos, w.Dir) {
		p.Ended = EventLooped
		return StepResult{Step: p.Steps, Event: EventLooped, Walker: w}
	}
	g.Mark(w.Pos, w.Dir)

	next, ok := g.Next(w.Pos, w.Dir)
	if !ok {
		p.Ended = EventExited
		return StepResult{Step: p.Steps, Event: EventExited, Walker: w}
	}

	if g.Terrain(next).Blocks() {
		p.Walker.Dir = w.Dir.TurnRight()
		return StepResult{Step: p.Steps, Event: EventTurned, Walker: p.Walker}
	}

	p.Walker.Pos = next
	p.visit(next)
	return StepResult{Step: p.Steps, Event: EventMoved, Walker: p.Walker}
}

// Run steps until the patrol ends and returns the final event.
// Termination is guaranteed within W*H*4+1 steps.
func (p *Patrol) Run() Event {
	for !p.Done() {
		p.Step()
	}
	return p.Ended
}

// Reachable is the set of positions visited by one unobstructed traversal.
type Reachable struct {
	seen   []bool
	count  int
	looped bool
}

// Has reports whether pos was visited.
func (r Reachable) Has(pos int) bool {
	return pos >= 0 && pos < len(r.seen) && r.seen[pos]
}

// Len returns the number of distinct visited positions.
func (r Reachable) Len() int {
	return r.count
}

// Looped reports whether the unmodified map already traps the guard.
func (r Reachable) Looped() bool {
	return r.looped
}

// Positions returns the visited positions in ascending order.
func (r Reachable) Positions() []int {
	out := make([]int, 0, r.count)
	for pos, ok := range r.seen {
		if ok {
			out = append(out, pos)
		}
	}
	return out
}

// ScanReachable walks the guard from start until it leaves the map and
// returns every position it stood on, start included. The walk runs on a
// flag-free copy, so g is not modified and a map that already loops still
// terminates.
func ScanReachable(g *Grid, start Walker) Reachable {
	p := NewPatrol(g.Pristine(), start)
	end := p.Run()
	return Reachable{
		seen:   p.seen,
		count:  p.count,
		looped: end == EventLooped,
	}
}

// DetectLoop replays the guard from start and reports whether it repeats a
// (position, direction) departure before leaving the map. Departure flags
// are written into g.
func DetectLoop(g *Grid, start Walker) bool {
	return NewPatrol(g, start).Run() == EventLooped
}
