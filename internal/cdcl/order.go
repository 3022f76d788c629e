package cdcl

import (
	"github.com/hakosat/hakosat/pkg/sat"
)

// activityHeap is a binary max-heap of variables keyed by activity,
// with a position index for in-place priority updates. It backs the
// VSIDS-style branching order.
type activityHeap struct {
	data     []sat.Var
	indices  []int
	activity []float64
}

func (h *activityHeap) grow(n int) {
	for len(h.indices) < n {
		h.indices = append(h.indices, -1)
		h.activity = append(h.activity, 0)
	}
}

func (h *activityHeap) less(x, y sat.Var) bool {
	return h.activity[x] > h.activity[y]
}

func (h *activityHeap) empty() bool {
	return len(h.data) == 0
}

func (h *activityHeap) contains(x sat.Var) bool {
	return int(x) < len(h.indices) && h.indices[x] >= 0
}

// decrease restores the heap property after x's priority increased.
func (h *activityHeap) decrease(x sat.Var) {
	if h.contains(x) {
		h.up(h.indices[x])
	}
}

func (h *activityHeap) push(x sat.Var) {
	if h.contains(x) {
		return
	}
	h.grow(int(x) + 1)
	h.data = append(h.data, x)
	h.up(len(h.data) - 1)
}

func (h *activityHeap) popMax() sat.Var {
	x := h.data[0]
	last := len(h.data) - 1
	h.data[0] = h.data[last]
	h.indices[h.data[0]] = 0
	h.indices[x] = -1
	h.data = h.data[:last]
	if len(h.data) > 1 {
		h.down(0)
	}
	return x
}

func (h *activityHeap) up(i int) {
	x := h.data[i]
	for i != 0 {
		p := (i - 1) >> 1
		if !h.less(x, h.data[p]) {
			break
		}
		h.data[i] = h.data[p]
		h.indices[h.data[i]] = i
		i = p
	}
	h.data[i] = x
	h.indices[x] = i
}

func (h *activityHeap) down(i int) {
	x := h.data[i]
	for {
		l, r := 2*i+1, 2*i+2
		if l >= len(h.data) {
			break
		}
		child := l
		if r < len(h.data) && h.less(h.data[r], h.data[l]) {
			child = r
		}
		if !h.less(h.data[child], x) {
			break
		}
		h.data[i] = h.data[child]
		h.indices[h.data[i]] = i
		i = child
	}
	h.data[i] = x
	h.indices[x] = i
}
