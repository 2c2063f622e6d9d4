package events

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue()
	q.Push(Event{Type: TypeStateChanged})
	q.Push(Event{Type: TypeMoveToComplete})
	q.Push(Event{Type: TypeStuck})

	got := q.Consume()
	require.Len(t, got, 3)
	assert.Equal(t, TypeStateChanged, got[0].Type)
	assert.Equal(t, TypeMoveToComplete, got[1].Type)
	assert.Equal(t, TypeStuck, got[2].Type)

	assert.Nil(t, q.Consume())
}

func TestQueueOverflowKeepsNewest(t *testing.T) {
	q := NewQueue()
	for i := 0; i < QueueSize+10; i++ {
		q.Push(Event{Type: TypeStateChanged, Payload: i})
	}

	got := q.Consume()
	require.Len(t, got, QueueSize)
	assert.Equal(t, 10, got[0].Payload)
	assert.Equal(t, QueueSize+9, got[len(got)-1].Payload)
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := NewQueue()

	var wg sync.WaitGroup
	const producers = 8
	const perProducer = 20
	for i := 0; i < producers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perProducer; j++ {
				q.Push(Event{Type: TypeStuck})
			}
		}()
	}
	wg.Wait()

	assert.Len(t, q.Consume(), producers*perProducer)
}

func TestRouterDispatch(t *testing.T) {
	q := NewQueue()
	r := NewRouter(q)

	var completes []bool
	var stuck int
	r.On(TypeMoveToComplete, func(ev Event) {
		completes = append(completes, ev.Payload.(MoveToCompletePayload).Forced)
	})
	r.On(TypeStuck, func(Event) { stuck++ })

	q.Push(Event{Type: TypeMoveToComplete, Payload: MoveToCompletePayload{Forced: true}})
	q.Push(Event{Type: TypeStateChanged, Payload: StateChangedPayload{Old: "Idle", New: "Running"}})
	q.Push(Event{Type: TypeStuck})

	r.DispatchAll()

	assert.Equal(t, []bool{true}, completes)
	assert.Equal(t, 1, stuck)
	assert.Equal(t, 1, r.HandlerCount(TypeStuck))
	assert.Equal(t, 0, r.HandlerCount(TypeStateChanged))
}

func TestRouterMultipleHandlersInOrder(t *testing.T) {
	q := NewQueue()
	r := NewRouter(q)

	var order []int
	r.On(TypeStuck, func(Event) { order = append(order, 1) })
	r.On(TypeStuck, func(Event) { order = append(order, 2) })

	q.Push(Event{Type: TypeStuck})
	r.DispatchAll()

	assert.Equal(t, []int{1, 2}, order)
}
