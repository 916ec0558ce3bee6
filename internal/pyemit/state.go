package pyemit

import (
	"github.com/trevadelman/fantom/internal/fir"
)

// state is the mutable printing context shared by the statement and
// expression printers for the duration of one method body. The type printer
// re-initializes it per method; nothing in it outlives the method.
type state struct {
	method *fir.MethodDef

	inStaticContext    bool // emit class name instead of self for implicit targets
	inClosureWithOuter bool // inside an inline lambda that captured outer this
	inWrappedClosure   bool // inside an extracted multi-statement closure

	closureCount   int // unique id source for extracted closures
	switchVarCount int // unique id source for cached switch conditions

	// registeredClosures maps each multi-statement closure found by the
	// pre-pass to its id. pending holds registered closures not yet emitted;
	// firstUse maps closure id to the top-level statement index at which the
	// def must appear.
	registeredClosures map[*fir.ClosureExpr]int
	pending            []*fir.ClosureExpr
	firstUse           map[int]int

	stmtIndex    int // index of the top-level statement being emitted
	closureDepth int // 0 in the method body, +1 per enclosing extracted closure

	// forLoopUpdate is a stack of update expressions of enclosing lowered
	// for-loops. continue emits the innermost one before jumping. A nil entry
	// marks a while loop so continue inside it stays bare.
	forLoopUpdate []*fir.Expr

	// paramWrappers maps an original local name to the name of the cvar
	// wrapper the front-end introduced for it.
	paramWrappers map[string]string
}

func newState(m *fir.MethodDef) *state {
	return &state{
		method:             m,
		inStaticContext:    m != nil && m.IsStatic,
		registeredClosures: map[*fir.ClosureExpr]int{},
		firstUse:           map[int]int{},
		paramWrappers:      map[string]string{},
	}
}

// nextClosureID allocates a closure id.
func (s *state) nextClosureID() int {
	id := s.closureCount
	s.closureCount++
	return id
}

// nextSwitchVar allocates a cached-condition variable name for a switch.
func (s *state) nextSwitchVar() int {
	id := s.switchVarCount
	s.switchVarCount++
	return id
}

// pushLoop records the update expression of a lowered for-loop (nil for a
// plain while) so continue statements can see it.
func (s *state) pushLoop(update *fir.Expr) {
	s.forLoopUpdate = append(s.forLoopUpdate, update)
}

func (s *state) popLoop() {
	s.forLoopUpdate = s.forLoopUpdate[:len(s.forLoopUpdate)-1]
}

// loopUpdate returns the innermost enclosing loop's update expression, or nil
// when the innermost loop is a plain while (or there is no loop).
func (s *state) loopUpdate() *fir.Expr {
	if len(s.forLoopUpdate) == 0 {
		return nil
	}
	return s.forLoopUpdate[len(s.forLoopUpdate)-1]
}
