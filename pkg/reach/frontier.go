package reach

import (
	"fmt"

	"github.com/zyedidia/generic/queue"
	"github.com/zyedidia/generic/stack"

	"github.com/matzehuels/wallcheck/pkg/spatial"
)

// Order selects how the frontier is drained.
type Order string

const (
	// OrderLIFO pops the most recently pushed cell (depth-first).
	OrderLIFO Order = "lifo"
	// OrderFIFO pops the oldest cell (breadth-first).
	OrderFIFO Order = "fifo"
)

// ParseOrder validates an order name. The empty string selects OrderLIFO.
func ParseOrder(s string) (Order, error) {
	switch Order(s) {
	case "", OrderLIFO:
		return OrderLIFO, nil
	case OrderFIFO:
		return OrderFIFO, nil
	}
	return "", fmt.Errorf("invalid order %q (must be one of: lifo, fifo)", s)
}

type frontier interface {
	push(c spatial.Cell)
	pop() spatial.Cell
	empty() bool
}

// newFrontier expects an order already checked by ParseOrder.
func newFrontier(o Order) frontier {
	if o == OrderFIFO {
		return &fifo{q: queue.New[spatial.Cell]()}
	}
	return &lifo{s: stack.New[spatial.Cell]()}
}

type lifo struct{ s *stack.Stack[spatial.Cell] }

func (f *lifo) push(c spatial.Cell) { f.s.Push(c) }
func (f *lifo) pop() spatial.Cell   { return f.s.Pop() }
func (f *lifo) empty() bool         { return f.s.Size() == 0 }

type fifo struct{ q *queue.Queue[spatial.Cell] }

func (f *fifo) push(c spatial.Cell) { f.q.Enqueue(c) }
func (f *fifo) pop() spatial.Cell   { return f.q.Dequeue() }
func (f *fifo) empty() bool         { return f.q.Empty() }
