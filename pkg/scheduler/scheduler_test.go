package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_RejectsBadSpec(t *testing.T) {
	s := New(nil)
	err := s.Register(Job{Name: "sweep", Spec: "not a spec", Run: func(context.Context) error { return nil }})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sweep")
	assert.Equal(t, 0, s.Len())
}

func TestRegister_RequiresRunFunc(t *testing.T) {
	s := New(nil)
	assert.Error(t, s.Register(Job{Name: "sweep", Spec: "@hourly"}))
}

func TestRegister_AddsEntry(t *testing.T) {
	s := New(nil)
	require.NoError(t, s.Register(Job{Name: "sweep", Spec: "@hourly", Run: func(context.Context) error { return nil }}))
	assert.Equal(t, 1, s.Len())

	s.Start()
	<-s.Stop().Done()
}
