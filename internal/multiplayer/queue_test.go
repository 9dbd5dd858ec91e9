package multiplayer

import (
	"sync"
	"testing"

	"github.com/vovakirdan/lanecross/internal/core"
)

func TestInputQueueFIFO(t *testing.T) {
	q := NewInputQueue(8)
	in := []core.Action{core.ActionUp, core.ActionLeft, core.ActionUp, core.ActionDown}
	for _, a := range in {
		q.Push(a)
	}
	if q.Len() != len(in) {
		t.Errorf("Len() = %d, expected %d", q.Len(), len(in))
	}

	for i, want := range in {
		got, ok := q.TryPop()
		if !ok || got != want {
			t.Errorf("TryPop() #%d = %v, %v, expected %v", i, got, ok, want)
		}
	}
	if _, ok := q.TryPop(); ok {
		t.Error("TryPop() on an empty queue should report false")
	}
}

func TestInputQueueDropsOldestWhenFull(t *testing.T) {
	q := NewInputQueue(2)
	q.Push(core.ActionUp)
	q.Push(core.ActionDown)
	q.Push(core.ActionLeft)

	first, _ := q.TryPop()
	second, _ := q.TryPop()
	if first != core.ActionDown || second != core.ActionLeft {
		t.Errorf("queue = [%v %v], expected [Down Left]", first, second)
	}
}

func TestInputQueueClear(t *testing.T) {
	q := NewInputQueue(0)
	for i := 0; i < 10; i++ {
		q.Push(core.ActionRight)
	}
	q.Clear()
	if q.Len() != 0 {
		t.Errorf("Len() after Clear = %d, expected 0", q.Len())
	}
}

func TestInputQueueConcurrentProducers(t *testing.T) {
	q := NewInputQueue(1024)
	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				q.Push(core.ActionUp)
			}
		}()
	}
	wg.Wait()

	n := 0
	for {
		if _, ok := q.TryPop(); !ok {
			break
		}
		n++
	}
	if n != 400 {
		t.Errorf("popped %d actions, expected 400", n)
	}
}
