package concurrency

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLockManager_SameKeySameMutex(t *testing.T) {
	lm := NewLockManager()
	assert.Same(t, lm.GetLock("battle:1"), lm.GetLock("battle:1"))
	assert.NotSame(t, lm.GetLock("battle:1"), lm.GetLock("battle:2"))
}

func TestLockManager_Serializes(t *testing.T) {
	lm := NewLockManager()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := lm.Lock("player:erd1alice")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}
