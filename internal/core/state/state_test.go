package state

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestState_CurrentEmptyBeforeFirstSample(t *testing.T) {
	s := New(time.Now())
	require.Equal(t, "", s.Current())
	require.NotNil(t, s.Hourly)
	require.NotNil(t, s.Daily)
	require.NotSame(t, s.Hourly, s.Daily)
}

func TestState_SetCurrentConcurrent(t *testing.T) {
	s := New(time.Now())

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			s.SetCurrent("20.000000")
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			v := s.Current()
			require.Contains(t, []string{"", "20.000000"}, v)
		}
	}()
	wg.Wait()

	require.Equal(t, "20.000000", s.Current())
}
