package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTeaSchedulerFiresOnce(t *testing.T) {
	s := newTeaScheduler()
	fired := 0
	s.AfterFunc(time.Millisecond, func() { fired++ })

	require.NotNil(t, s.drain())
	require.Nil(t, s.drain())

	s.fire(1)
	s.fire(1)
	require.Equal(t, 1, fired)
}

func TestTeaSchedulerIgnoresStoppedTicks(t *testing.T) {
	s := newTeaScheduler()
	fired := false
	timer := s.AfterFunc(time.Millisecond, func() { fired = true })

	require.True(t, timer.Stop())
	require.False(t, timer.Stop())
	s.fire(1)
	require.False(t, fired)
}
