// Package balance assigns image groups to workers with the LPT
// (longest-processing-time-first) greedy heuristic.
package balance

import (
	"container/heap"

	"github.com/lumipallolabs/sgsplit/internal/model"
)

// Assign distributes groups across workers. Groups are taken largest first
// and each goes to the worker with the lowest load, lowest index winning
// ties. Groups are never split. The groups slice is not modified.
//
// Worker count bounds are validated by the caller.
func Assign(groups []*model.Group, workers []*model.WorkerAssignment) {
	if len(workers) == 0 {
		return
	}

	ordered := make([]*model.Group, len(groups))
	copy(ordered, groups)
	model.SortGroupsBySize(ordered)

	h := make(loadHeap, len(workers))
	copy(h, workers)
	heap.Init(&h)

	for _, g := range ordered {
		w := h[0]
		w.Assign(g)
		heap.Fix(&h, 0)
	}
}

// Plan creates n workers under root and assigns groups to them
func Plan(groups []*model.Group, root, prefix string, n int) []*model.WorkerAssignment {
	workers := model.NewWorkerAssignments(root, prefix, n)
	Assign(groups, workers)
	return workers
}

// Loads returns the file count per worker, in worker order
func Loads(workers []*model.WorkerAssignment) []int {
	loads := make([]int, len(workers))
	for i, w := range workers {
		loads[i] = w.Load
	}
	return loads
}

// Skew returns the difference between the most and least loaded workers
func Skew(workers []*model.WorkerAssignment) int {
	if len(workers) == 0 {
		return 0
	}
	min, max := workers[0].Load, workers[0].Load
	for _, w := range workers[1:] {
		if w.Load < min {
			min = w.Load
		}
		if w.Load > max {
			max = w.Load
		}
	}
	return max - min
}

// loadHeap is a min-heap of workers keyed by (load, index)
type loadHeap []*model.WorkerAssignment

func (h loadHeap) Len() int { return len(h) }

func (h loadHeap) Less(i, j int) bool {
	if h[i].Load != h[j].Load {
		return h[i].Load < h[j].Load
	}
	return h[i].Index < h[j].Index
}

func (h loadHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *loadHeap) Push(x any) { *h = append(*h, x.(*model.WorkerAssignment)) }

func (h *loadHeap) Pop() any {
	old := *h
	n := len(old)
	w := old[n-1]
	*h = old[:n-1]
	return w
}
