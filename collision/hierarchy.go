package collision

import (
	"time"

	"github.com/achilleasa/lumen/log"
)

type Axis uint8

const (
	XAxis Axis = iota
	YAxis
	ZAxis
)

var logger = log.New("collision")

// Build statistics for a volume hierarchy.
type HierarchyStats struct {
	Nodes    int
	Leaves   int
	MaxDepth int

	// Total number of samples stored in the leafs.
	Samples int
}

// Recursively split this volume into a hierarchy of child volumes of the
// same type. Nodes holding a single sample are never split. The hierarchy
// should be built once from untransformed geometry; later pose changes
// only need ApplyTransform.
func (v *Volume) BuildHierarchy() {
	if len(v.samples) <= 1 {
		return
	}

	start := time.Now()
	v.subdivide()

	stats := v.Stats()
	logger.Debugf(
		"%s hierarchy build time: %d ms, samples: %d, maxDepth: %d, nodes: %d, leafs: %d",
		v.kind, time.Since(start).Nanoseconds()/1e6,
		stats.Samples, stats.MaxDepth, stats.Nodes, stats.Leaves,
	)
}

// Split the node samples along the axis of largest extent. If either side
// of the split ends up empty the split is discarded and the node stays a
// leaf.
func (v *Volume) subdivide() {
	if len(v.samples) <= 1 {
		return
	}

	axis := v.splitAxis()
	center := v.Center()

	leftList := make([]Sample, 0, len(v.samples)/2)
	rightList := make([]Sample, 0, len(v.samples)/2)
	for _, s := range v.samples {
		if s.Center()[axis] <= center[axis] {
			leftList = append(leftList, s)
		} else {
			rightList = append(rightList, s)
		}
	}

	// All samples coincide along the split axis
	if len(leftList) == 0 || len(rightList) == 0 {
		v.left, v.right = nil, nil
		return
	}

	v.left = &Volume{kind: v.kind}
	v.left.AddSamples(leftList)
	v.right = &Volume{kind: v.kind}
	v.right.AddSamples(rightList)

	if len(v.left.samples) > 1 {
		v.left.subdivide()
	}
	if len(v.right.samples) > 1 {
		v.right.subdivide()
	}
}

// Select the axis with the strictly largest current size. Ties resolve to
// the X axis.
func (v *Volume) splitAxis() Axis {
	size := v.Size()
	switch {
	case size[1] > size[0] && size[1] > size[2]:
		return YAxis
	case size[2] > size[0] && size[2] > size[1]:
		return ZAxis
	default:
		return XAxis
	}
}

// Visit the hierarchy in pre-order. If fn returns false the children of
// the visited node are skipped.
func (v *Volume) Walk(fn func(node *Volume, depth int) bool) {
	v.walk(fn, 0)
}

func (v *Volume) walk(fn func(node *Volume, depth int) bool, depth int) {
	if !fn(v, depth) || v.IsLeaf() {
		return
	}
	v.left.walk(fn, depth+1)
	v.right.walk(fn, depth+1)
}

// Get the leafs of the hierarchy in left-to-right order.
func (v *Volume) Leaves() []*Volume {
	leaves := make([]*Volume, 0)
	v.Walk(func(node *Volume, _ int) bool {
		if node.IsLeaf() {
			leaves = append(leaves, node)
		}
		return true
	})
	return leaves
}

// Collect hierarchy statistics.
func (v *Volume) Stats() HierarchyStats {
	var stats HierarchyStats
	v.Walk(func(node *Volume, depth int) bool {
		stats.Nodes++
		if depth > stats.MaxDepth {
			stats.MaxDepth = depth
		}
		if node.IsLeaf() {
			stats.Leaves++
			stats.Samples += len(node.samples)
		}
		return true
	})
	return stats
}
