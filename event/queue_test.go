package event

import (
	"sync"
	"testing"

	"github.com/lixenwraith/termdesk/parameter"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue()
	q.Push(Op{Kind: OpFocusNext})
	q.Push(Op{Kind: OpMove, DX: 1})
	q.Push(Op{Kind: OpQuit})

	ops := q.Consume()
	if len(ops) != 3 {
		t.Fatalf("Expected 3 ops, got %d", len(ops))
	}
	if ops[0].Kind != OpFocusNext || ops[1].Kind != OpMove || ops[2].Kind != OpQuit {
		t.Errorf("Expected FIFO order, got %v %v %v", ops[0].Kind, ops[1].Kind, ops[2].Kind)
	}
	if ops[1].DX != 1 {
		t.Errorf("Expected payload preserved, got %+v", ops[1])
	}

	if more := q.Consume(); more != nil {
		t.Errorf("Expected empty queue, got %d ops", len(more))
	}
}

func TestQueueOverflowKeepsNewest(t *testing.T) {
	q := NewQueue()
	total := int(parameter.OpQueueSize) + 10
	for i := 0; i < total; i++ {
		q.Push(Op{Kind: OpMove, DX: i})
	}

	ops := q.Consume()
	if len(ops) != int(parameter.OpQueueSize) {
		t.Fatalf("Expected %d ops after overflow, got %d", parameter.OpQueueSize, len(ops))
	}
	if ops[len(ops)-1].DX != total-1 {
		t.Errorf("Expected newest op retained, got DX=%d", ops[len(ops)-1].DX)
	}
}

func TestQueueConsumeWrapsClean(t *testing.T) {
	q := NewQueue()
	// Overflow so the consumed window wraps the ring
	total := int(parameter.OpQueueSize) + int(parameter.OpQueueSize)/2
	for i := 0; i < total; i++ {
		q.Push(Op{Kind: OpMove, DX: i})
	}

	ops := q.Consume()
	if len(ops) != int(parameter.OpQueueSize) {
		t.Fatalf("Expected %d ops, got %d", parameter.OpQueueSize, len(ops))
	}
	if q.Len() != 0 {
		t.Errorf("Expected committed head, got %d pending", q.Len())
	}

	// Flags clear only after the head commit, and every consumed slot
	// must end up reusable
	for i := range q.published {
		if q.published[i].Load() {
			t.Errorf("Expected slot %d cleared", i)
		}
	}

	q.Push(Op{Kind: OpQuit})
	again := q.Consume()
	if len(again) != 1 || again[0].Kind != OpQuit {
		t.Errorf("Expected ring reusable after wrap, got %v", again)
	}
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := NewQueue()
	const producers = 8
	const perProducer = 20 // Stays under queue capacity

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Push(Op{Kind: OpInvalidate, DX: p, DY: i})
			}
		}(p)
	}
	wg.Wait()

	seen := 0
	for {
		ops := q.Consume()
		if len(ops) == 0 {
			break
		}
		seen += len(ops)
	}
	if seen != producers*perProducer {
		t.Errorf("Expected %d ops, got %d", producers*perProducer, seen)
	}
}
