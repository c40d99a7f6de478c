package appconfig

import (
	"github.com/goliatone/go-appconfig/document"
)

// frame is one mapping on the scope stack. path locates the mapping in the
// document; the root frame has an empty path.
type frame struct {
	path   string
	values document.Mapping
}

// scopeStack holds the mappings enclosing the value being resolved. The root
// document is frames[0] and is never popped; the innermost frame is last.
type scopeStack struct {
	frames []frame
	seen   map[string]bool
}

func newScopeStack(root document.Mapping) *scopeStack {
	return &scopeStack{
		frames: []frame{{values: root}},
		seen:   map[string]bool{},
	}
}

// lookup searches the frames innermost first. A nil binding counts as absent
// and the search continues outward.
func (s *scopeStack) lookup(name string) (value any, scope string, ok bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if v, exists := s.frames[i].values[name]; exists && v != nil {
			return v, s.frames[i].path, true
		}
	}
	return nil, "", false
}

func (s *scopeStack) has(name string) bool {
	_, _, ok := s.lookup(name)
	return ok
}

// push makes values the innermost frame. Keys bound by values that are being
// resolved further out are unmarked so they can be resolved again in the new
// scope; push returns them for pop to restore. A nil binding does not shadow
// anything, so it hides nothing.
func (s *scopeStack) push(path string, values document.Mapping) []string {
	s.frames = append(s.frames, frame{path: path, values: values})
	var hidden []string
	for key, value := range values {
		if value != nil && s.seen[key] {
			delete(s.seen, key)
			hidden = append(hidden, key)
		}
	}
	return hidden
}

func (s *scopeStack) pop(hidden []string) {
	if len(s.frames) > 1 {
		s.frames = s.frames[:len(s.frames)-1]
	}
	for _, key := range hidden {
		s.seen[key] = true
	}
}

// depth is the number of frames above the root.
func (s *scopeStack) depth() int {
	return len(s.frames) - 1
}

func (s *scopeStack) enter(key string) bool {
	if s.seen[key] {
		return false
	}
	s.seen[key] = true
	return true
}

func (s *scopeStack) leave(key string) {
	delete(s.seen, key)
}
