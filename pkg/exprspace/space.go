package exprspace

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Space is a content-addressable, order-preserving multiset of atoms: the
// runtime's knowledge base. It is a shared mutable object whose lifetime
// spans a session (spec.md §3); concurrent access is guarded by a
// read/write lock so a query's cloned-bindings result is always released
// before a caller may mutate the Space, matching the "no outstanding read
// borrow on write" discipline the teacher's Substitution/ConstraintStore
// types enforce with the same primitive.
type Space struct {
	mu    sync.RWMutex
	atoms []Atom
	log   *zap.Logger
}

// NewSpace returns an empty Space. A nil logger disables tracing.
func NewSpace(log *zap.Logger) *Space {
	if log == nil {
		log = zap.NewNop()
	}
	return &Space{atoms: nil, log: log}
}

// Add appends atom to the Space. No deduplication is performed.
func (s *Space) Add(atom Atom) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.atoms = append(s.atoms, atom)
	s.log.Debug("space.add", zap.String("atom", atom.String()))
}

// Remove deletes the first structurally-equal occurrence of atom,
// reporting whether one was found.
func (s *Space) Remove(atom Atom) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.atoms {
		if a.Equal(atom) {
			s.atoms = append(s.atoms[:i], s.atoms[i+1:]...)
			s.log.Debug("space.remove", zap.String("atom", atom.String()))
			return true
		}
	}
	return false
}

// Len reports the number of atoms currently stored.
func (s *Space) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.atoms)
}

// Atoms returns a snapshot copy of every atom in the Space, in insertion
// order. The returned slice is safe to range over without holding any
// lock on s.
func (s *Space) Atoms() []Atom {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Atom, len(s.atoms))
	copy(out, s.atoms)
	return out
}

// Query matches pattern against every atom currently in the Space and
// returns every successful binding set. Each stored atom's variables are
// alpha-renamed to fresh tags before matching, so rule variables from the
// Space can never leak into the caller's bindings; Query never mutates
// the Space. Each returned binding set holds only the pattern's own
// variables, each bound to its fully substituted value. Results are
// returned in storage order, then in the order the matcher emits bindings
// for each atom.
func (s *Space) Query(pattern Atom) []*Bindings {
	snapshot := s.Atoms()
	s.log.Debug("space.query", zap.String("pattern", pattern.String()), zap.Int("candidates", len(snapshot)))

	patternVars := make(map[uuid.UUID]*Variable)
	renameWith(pattern, patternVars)

	var results []*Bindings
	for _, stored := range snapshot {
		renamed := renameVariables(stored)
		for _, b := range MatchAtoms(pattern, renamed) {
			narrowed := NewBindings()
			for tag, fresh := range patternVars {
				v := varWithTag(fresh.Name, tag)
				if val := ApplyBindings(v, b); !val.Equal(v) {
					narrowed.m[tag] = entry{name: v.Name, atom: val}
				}
			}
			results = append(results, narrowed)
		}
	}
	return results
}

// renameVariables returns a copy of atom with every Variable replaced by
// a fresh MakeUnique'd variable, consistently mapping repeated
// occurrences of the same variable to the same replacement.
func renameVariables(atom Atom) Atom {
	fresh := make(map[uuid.UUID]*Variable)
	return renameWith(atom, fresh)
}

func renameWith(atom Atom, fresh map[uuid.UUID]*Variable) Atom {
	switch t := atom.(type) {
	case *Variable:
		if v, ok := fresh[t.tag]; ok {
			return v
		}
		v := t.MakeUnique()
		fresh[t.tag] = v
		return v
	case *Expression:
		children := make([]Atom, len(t.Children))
		for i, c := range t.Children {
			children[i] = renameWith(c, fresh)
		}
		return &Expression{Children: children}
	default:
		return atom
	}
}
