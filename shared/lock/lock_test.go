package lock_test

import (
	"sync"
	"testing"
	"villa/shared/lock"
)

func TestKeyed_SerializesSameKey(t *testing.T) {
	keyed := lock.NewKeyed()

	const workers = 50

	counter := 0

	var wg sync.WaitGroup

	wg.Add(workers)

	for range workers {
		go func() {
			defer wg.Done()

			keyed.Lock("room-101")
			defer keyed.Unlock("room-101")

			counter++
		}()
	}

	wg.Wait()

	if counter != workers {
		t.Errorf("expected counter to be %d, got %d", workers, counter)
	}
}

func TestKeyed_IndependentKeys(t *testing.T) {
	keyed := lock.NewKeyed()

	keyed.Lock("room-101")

	done := make(chan struct{})

	go func() {
		// A different key must not block behind room-101.
		keyed.Lock("room-102")
		keyed.Unlock("room-102")
		close(done)
	}()

	<-done

	keyed.Unlock("room-101")
}

func TestKeyed_Reacquire(t *testing.T) {
	keyed := lock.NewKeyed()

	keyed.Lock("hall-1")
	keyed.Unlock("hall-1")

	keyed.Lock("hall-1")
	keyed.Unlock("hall-1")
}
