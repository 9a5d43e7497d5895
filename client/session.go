package client

import "maps"

// session is the connection's mutable per-call context. It is owned
// exclusively by one Conn and mutated only by operation calls on that
// Conn; concurrent mutation needs external synchronization.
type session struct {
	token     string
	namespace string
	database  string
	vars      map[string]any

	// lastID is the correlation id of the most recently issued
	// request. Informative only.
	lastID string
}

func newSession() session {
	return session{vars: make(map[string]any)}
}

func (s *session) bind(key string, value any) {
	s.vars[key] = value
}

func (s *session) unbind(key string) error {
	if _, ok := s.vars[key]; !ok {
		return ErrVarNotBound
	}
	delete(s.vars, key)
	return nil
}

// mergeVars overlays the session-bound variables on top of the
// call-site parameters. Session bindings win on key collision. The
// caller's map is never mutated.
func (s *session) mergeVars(callVars map[string]any) map[string]any {
	merged := make(map[string]any, len(callVars)+len(s.vars))
	maps.Copy(merged, callVars)
	maps.Copy(merged, s.vars)
	return merged
}
