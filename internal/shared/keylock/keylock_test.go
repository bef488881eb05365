package keylock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocker_SerialisesSameKey(t *testing.T) {
	locker := New()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locker.Lock("employee:1")
			defer unlock()
			v := counter
			v++
			counter = v
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
	assert.Equal(t, 0, locker.size())
}

func TestLocker_IndependentKeys(t *testing.T) {
	locker := New()

	unlockA := locker.Lock("a")
	done := make(chan struct{})
	go func() {
		unlockB := locker.Lock("b")
		unlockB()
		close(done)
	}()
	<-done
	unlockA()

	assert.Equal(t, 0, locker.size())
}

func TestLocker_UnlockTwiceIsSafe(t *testing.T) {
	locker := New()

	unlock := locker.Lock("a")
	unlock()
	unlock()

	assert.Equal(t, 0, locker.size())
}
