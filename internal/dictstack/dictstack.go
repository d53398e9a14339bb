// Package dictstack implements the dictionary stack:
// a permanent local dictionary at the bottom, user dictionaries pushed by
// `begin` above it, and the system dictionary consulted last on lookup.
package dictstack

import (
	"eps2pdf/internal/errors"
	"eps2pdf/internal/value"
)

// Stack is the scope chain searched on every name lookup.
type Stack struct {
	local *value.DictObject
	user  []*value.DictObject // top is last element
	sys   *value.SystemDictObject
}

// New builds the stack with its permanent local dictionary and a system
// dictionary view delegating to sysLookup/sysCount (populated by the
// operator table — SystemDictObject).
func New(sysLookup func(name string) (value.Value, bool), sysCount func() int) *Stack {
	return &Stack{
		local: value.NewDict(value.Local),
		sys:   &value.SystemDictObject{Lookup: sysLookup, Count: sysCount},
	}
}

func (s *Stack) Local() *value.DictObject { return s.local }

// Current returns the top of the dictionary stack — the dictionary `def`
// writes into.
func (s *Stack) Current() *value.DictObject {
	if n := len(s.user); n > 0 {
		return s.user[n-1]
	}
	return s.local
}

func (s *Stack) Def(key, val value.Value) error {
	return s.Current().Put(key, val)
}

// Begin pushes a user dictionary.
func (s *Stack) Begin(d *value.DictObject) { s.user = append(s.user, d) }

// End pops the top user dictionary; the permanent local dictionary can
// never be popped.
func (s *Stack) End() error {
	if len(s.user) == 0 {
		return errors.New(errors.DictStackUnderflow, "end")
	}
	s.user = s.user[:len(s.user)-1]
	return nil
}

// Find implements the lookup order: user dictionaries top to bottom, then
// the local dictionary, then the system dictionary.
func (s *Stack) Find(key string) (value.Value, bool) {
	lit := litKey(key)
	for i := len(s.user) - 1; i >= 0; i-- {
		if v, ok := s.user[i].Get(lit); ok {
			return v, true
		}
	}
	if v, ok := s.local.Get(lit); ok {
		return v, true
	}
	return s.sys.Get(key)
}

// Where returns a Value wrapping whichever dictionary holds key, or the
// system dictionary view if key resolves to a built-in.
func (s *Stack) Where(key string) (value.Value, bool) {
	lit := litKey(key)
	for i := len(s.user) - 1; i >= 0; i-- {
		if _, ok := s.user[i].Get(lit); ok {
			return value.Value{Kind: value.DictKind, Obj: s.user[i]}, true
		}
	}
	if _, ok := s.local.Get(lit); ok {
		return value.Value{Kind: value.DictKind, Obj: s.local}, true
	}
	if _, ok := s.sys.Get(key); ok {
		return value.Value{Kind: value.SystemDict, Obj: s.sys}, true
	}
	return value.Value{}, false
}

func litKey(name string) value.Value {
	str, _ := value.NewString([]byte(name), value.TagName, value.Local)
	return value.Value{Kind: value.Name, Obj: str}
}

// snapshot is the opaque payload stashed in value.SavedState.DictSnapshot
// by Clone and consumed by Restore.
type snapshot struct {
	local *value.DictObject
	user  []*value.DictObject
}

// Clone deep-copies the local dictionary and every user dictionary on the
// stack, for `save`.
func Clone(s *Stack) interface{} {
	snap := &snapshot{
		local: cloneDict(s.local),
		user:  make([]*value.DictObject, len(s.user)),
	}
	for i, d := range s.user {
		snap.user[i] = cloneDict(d)
	}
	return snap
}

func cloneDict(d *value.DictObject) *value.DictObject {
	cloned := value.Clone(value.Value{Kind: value.DictKind, Obj: d}, d.Alloc)
	return cloned.AsDict()
}

// Restore replaces the dictionary stack's contents with a prior Clone
// snapshot. The local dictionary's identity is
// preserved — its contents are overwritten in place — so any value that
// already captured `currentdict` keeps pointing at the live dictionary;
// user dictionaries are simply swapped in wholesale.
func Restore(s *Stack, snap interface{}) error {
	sn, ok := snap.(*snapshot)
	if !ok {
		return errors.New(errors.TypeCheck, "restore")
	}
	s.local.StrKeys = sn.local.StrKeys
	s.local.NumKeys = sn.local.NumKeys
	s.user = sn.user
	return nil
}
