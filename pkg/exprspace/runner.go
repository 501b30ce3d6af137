// Session implements the top-level driver described in spec.md §4.5,
// grounded on _examples/original_source/lib/src/metta/runner/mod.rs's
// Metta struct: a Space, a Tokenizer, a settings table, and the
// ADD/INTERPRET mode loop keyed on the "!" sentinel symbol.
package exprspace

import (
	"fmt"

	"go.uber.org/zap"
)

// execSymbol is the sentinel marking an atom for immediate interpretation
// rather than storage, per spec.md §4.5 ("!" prefix).
var execSymbol Atom = Sym("!")

// Mode distinguishes how Session.Run handles a top-level atom.
type Mode int

const (
	// ModeAdd stores the atom in the Space unchanged.
	ModeAdd Mode = iota
	// ModeInterpret interprets the atom and returns its reduced forms.
	ModeInterpret
)

// Session bundles a Space and Tokenizer with the settings that govern a
// single run, mirroring runner/mod.rs's Metta struct.
type Session struct {
	space     *Space
	tokenizer *Tokenizer
	settings  map[string]string
	log       *zap.Logger
	tracer    *Tracer
}

// SessionOption configures a Session at construction time, following the
// functional-options shape the teacher's dynamic worker pool config used
// for its tunables.
type SessionOption func(*Session)

// WithSetting pre-populates a session setting, such as "type-check" =
// "auto" to enable the type-checking gate described in spec.md §4.5/§7.
func WithSetting(key, value string) SessionOption {
	return func(s *Session) {
		s.settings[key] = value
	}
}

// WithLogger attaches a structured logger used for tracing Add/eval
// activity; both the Session and its Space log through it.
func WithLogger(log *zap.Logger) SessionOption {
	return func(s *Session) {
		s.log = log
	}
}

// NewSession returns a Session over a fresh Space and Tokenizer.
func NewSession(opts ...SessionOption) *Session {
	s := &Session{settings: make(map[string]string), log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	s.space = NewSpace(s.log)
	s.tokenizer = NewTokenizer()
	s.tracer = NewTracer(s.log)
	return s
}

// Tracer returns the session's operation tracer, exposing per-kind Add and
// Eval counts and average durations to embedders (spec.md §6) the way
// runner/mod.rs's Metta exposes its own run-time metrics.
func (s *Session) Tracer() *Tracer { return s.tracer }

// Space returns the session's knowledge base.
func (s *Session) Space() *Space { return s.space }

// Tokenizer returns the session's token registry.
func (s *Session) Tokenizer() *Tokenizer { return s.tokenizer }

// GetSetting returns a session setting and whether it was present.
func (s *Session) GetSetting(key string) (string, bool) {
	v, ok := s.settings[key]
	return v, ok
}

// SetSetting assigns a session setting.
func (s *Session) SetSetting(key, value string) {
	s.settings[key] = value
}

// Run processes each atom in order per spec.md §4.5: an atom of the form
// (! expr) is interpreted immediately and contributes its reduced forms
// to the result; any other atom is added to the Space unchanged and
// contributes no result entry. The returned slice has one entry per
// interpreted atom, each holding every branch its interpretation reduced
// to.
func (s *Session) Run(atoms []Atom) ([][]Atom, error) {
	var out [][]Atom
	for _, atom := range atoms {
		mode, inner := s.classify(atom)
		switch mode {
		case ModeAdd:
			s.addAtom(inner)
		case ModeInterpret:
			out = append(out, s.evaluateAtom(inner))
		}
	}
	return out, nil
}

// classify reports whether atom is a (! expr) interpret directive, and if
// so returns the inner expr.
func (s *Session) classify(atom Atom) (Mode, Atom) {
	e, ok := atom.(*Expression)
	if !ok || len(e.Children) != 2 || !e.Children[0].Equal(execSymbol) {
		return ModeAdd, atom
	}
	return ModeInterpret, e.Children[1]
}

// addAtom stores atom in the Space, rejecting it with a logged warning
// (but no panic: spec.md §7 treats malformed input as recoverable) when
// type-check=auto is set and the atom fails validation.
func (s *Session) addAtom(atom Atom) {
	defer s.tracer.Start("add").Complete()
	if v, ok := s.GetSetting("type-check"); ok && v == "auto" {
		if !ValidateAtom(s.space, atom) {
			s.log.Warn("rejected ill-typed atom on add", zap.String("atom", atom.String()))
			return
		}
	}
	s.space.Add(atom)
}

// evaluateAtom interprets atom to completion, wrapping each reduced
// branch's type failure as (Error atom BadType) when type-check=auto is
// set, per spec.md §4.5/§7.
func (s *Session) evaluateAtom(atom Atom) []Atom {
	s.log.Debug("session.eval", zap.String("atom", atom.String()))
	defer s.tracer.Start("eval").Complete()
	results := Interpret(s.space, atom)

	v, typeCheckAuto := s.GetSetting("type-check")
	if !typeCheckAuto || v != "auto" {
		return results
	}
	checked := make([]Atom, len(results))
	for i, r := range results {
		if ValidateAtom(s.space, r) {
			checked[i] = r
		} else {
			checked[i] = Expr(ErrorSymbol, r, BadTypeSymbol)
		}
	}
	return checked
}

// EvaluateAtom interprets expr to completion without consulting
// classify, for embedders driving interpretation directly (spec.md §6).
func (s *Session) EvaluateAtom(expr Atom) []Atom {
	return s.evaluateAtom(expr)
}

// AddAtom stores atom in the Space directly, for embedders that already
// know they want ModeAdd semantics (spec.md §6).
func (s *Session) AddAtom(atom Atom) {
	s.addAtom(atom)
}

// TypeCheck reports whether atom currently validates against the
// session's Space, exposing ValidateAtom through the embedding surface
// (spec.md §6).
func (s *Session) TypeCheck(atom Atom) bool {
	return ValidateAtom(s.space, atom)
}

// moduleSpace is a Grounded value wrapping a child Space, the return
// value of LoadModule. It supplements spec.md with runner/mod.rs's
// load_module: a loaded module is itself an atom embedding its Space, so
// it can be imported, passed around, and matched against like any other
// grounded value.
type moduleSpace struct {
	name  string
	space *Space
}

func (m *moduleSpace) String() string { return fmt.Sprintf("(Module %s)", m.name) }

func (m *moduleSpace) TypeOf() Atom { return Sym("Module") }

func (m *moduleSpace) Match(other Atom) []*Bindings {
	if g, ok := other.(*Grounded); ok {
		if o, ok := g.Value.(*moduleSpace); ok && o.name == m.name && o.space == m.space {
			return []*Bindings{NewBindings()}
		}
		return nil
	}
	return nil
}

func (m *moduleSpace) Executable() bool { return false }

func (m *moduleSpace) Execute([]Atom) ([]Atom, *ExecError) {
	return nil, NotExecutable()
}

func (m *moduleSpace) EqualValue(other GroundedValue) bool {
	o, ok := other.(*moduleSpace)
	return ok && o.name == m.name && o.space == m.space
}

// LoadModule creates a child Space seeded with atoms, labels it with name
// (the Session keeps no registry of loaded modules), and returns a
// Grounded atom wrapping it so the caller can add it
// to their own Space (or pass it to a grounded "import" operator) like
// any other value.
func (s *Session) LoadModule(name string, atoms []Atom) Atom {
	child := NewSpace(s.log)
	for _, a := range atoms {
		child.Add(a)
	}
	return Gnd(&moduleSpace{name: name, space: child})
}
