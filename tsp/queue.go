package tsp

import "container/heap"

// statePQ is a min-heap of *searchState ordered by key, then by insertion
// sequence. The (key, seq) pair is unique, so the pop order is total and
// deterministic for a given input.
type statePQ []*searchState

// Len returns the number of items in the heap.
func (pq statePQ) Len() int { return len(pq) }

// Less orders by key ascending, earlier pushes first on ties.
func (pq statePQ) Less(i, j int) bool {
	if pq[i].key != pq[j].key {
		return pq[i].key < pq[j].key
	}

	return pq[i].seq < pq[j].seq
}

// Swap swaps two elements in the heap.
func (pq statePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds x; called by heap.Push only.
func (pq *statePQ) Push(x interface{}) { *pq = append(*pq, x.(*searchState)) }

// Pop removes the last element; called by heap.Pop only.
func (pq *statePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil // let the GC reclaim the state's matrix
	*pq = old[:n-1]

	return item
}

// stateQueue wraps statePQ with key snapshotting and sequence numbering.
type stateQueue struct {
	pq       statePQ
	priority Priority
	nextSeq  uint64
}

func newStateQueue(p Priority) *stateQueue {
	q := &stateQueue{pq: make(statePQ, 0, 64), priority: p}
	heap.Init(&q.pq)

	return q
}

// push snapshots the state's key from its current bound and enqueues it.
func (q *stateQueue) push(s *searchState) {
	s.key = q.priority.key(s.bound, s.depth, len(s.remaining))
	s.seq = q.nextSeq
	q.nextSeq++
	heap.Push(&q.pq, s)
}

// pop removes the minimum state; nil when empty.
func (q *stateQueue) pop() *searchState {
	if q.pq.Len() == 0 {
		return nil
	}

	return heap.Pop(&q.pq).(*searchState)
}

func (q *stateQueue) len() int { return q.pq.Len() }
