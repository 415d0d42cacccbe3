package entity

import (
	"fmt"

	"volunteer-marketplace-be/internal/apperror"
)

// transitions lists, per state, the states it may move to.
// A state with no entry is terminal.
type transitions[S ~string] map[S][]S

func (t transitions[S]) allows(from, to S) bool {
	for _, next := range t[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (t transitions[S]) terminal(s S) bool {
	return len(t[s]) == 0
}

func (t transitions[S]) known(s S) bool {
	if _, ok := t[s]; ok {
		return true
	}
	for _, nexts := range t {
		for _, n := range nexts {
			if n == s {
				return true
			}
		}
	}
	return false
}

// check returns nil when from→to is legal. Leaving a terminal state is
// reported as AlreadyProcessed so that resubmissions are idempotent errors.
func (t transitions[S]) check(entityName string, from, to S) error {
	if t.allows(from, to) {
		return nil
	}
	if t.terminal(from) {
		return apperror.AlreadyProcessed(fmt.Sprintf("%s is already %s", entityName, from))
	}
	return apperror.Field("status", fmt.Sprintf("%s cannot move from %s to %s", entityName, from, to))
}

func parse[S ~string](t transitions[S], field, raw string) (S, error) {
	s := S(raw)
	if !t.known(s) {
		return s, apperror.Field(field, fmt.Sprintf("unknown value %q", raw))
	}
	return s, nil
}
