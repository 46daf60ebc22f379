package bvh

import (
	"sort"
	"time"

	"github.com/auriga-render/auriga/asset/scene"
	"github.com/auriga-render/auriga/log"
	"github.com/auriga-render/auriga/types"
)

type Axis int

const (
	XAxis Axis = iota
	YAxis
	ZAxis
)

var logger = log.New("bvh")

// The BoundedVolume interface is implemented by all meshes/primitives that
// can be partitioned by the bvh builder.
type BoundedVolume interface {
	BBox() [2]types.Vec3
	Center() types.Vec3
}

// Construct a flattened BVH from a set of bounded volumes.
//
// The tree is built top-down by splitting the work list at the median of its
// centroid bounds along the axis with the largest extent. Every leaf holds
// exactly one item; leaf nodes store the index of the item in the original
// workList.
//
// Nodes are emitted in depth-first order and wired with the entry/exit
// encoding described in the scene package: hitting an internal node's box
// continues at the slot right after it (its first child), missing it jumps
// past the node's entire subtree. The exit index of the last node in any
// subtree chain equals the total node count, which terminates traversal.
func Build(workList []BoundedVolume) []scene.BvhNode {
	if len(workList) == 0 {
		return nil
	}

	start := time.Now()
	b := &builder{
		items: workList,
		nodes: make([]scene.BvhNode, 0, 2*len(workList)-1),
	}

	indices := make([]uint32, len(workList))
	for i := range indices {
		indices[i] = uint32(i)
	}
	maxDepth := b.partition(indices, 0)

	logger.Debugf(
		"flattened %d items into a %d node BVH (max depth %d) in %d ms",
		len(workList), len(b.nodes), maxDepth, time.Since(start).Nanoseconds()/1e6,
	)
	return b.nodes
}

type builder struct {
	items []BoundedVolume
	nodes []scene.BvhNode
}

// Emit the node for this work list and recursively partition it. Returns the
// max tree depth encountered.
func (b *builder) partition(indices []uint32, depth int) int {
	slot := uint32(len(b.nodes))
	b.nodes = append(b.nodes, scene.BvhNode{})

	if len(indices) == 1 {
		node := &b.nodes[slot]
		node.SetBBox(b.items[indices[0]].BBox())
		node.SetLeaf(indices[0], slot+1)
		return depth
	}

	bbox := b.bboxOf(indices)
	axis := splitAxis(b.centroidBBoxOf(indices))
	sort.Slice(indices, func(i, j int) bool {
		return b.items[indices[i]].Center()[axis] < b.items[indices[j]].Center()[axis]
	})

	mid := len(indices) / 2
	lDepth := b.partition(indices[:mid], depth+1)
	rDepth := b.partition(indices[mid:], depth+1)

	node := &b.nodes[slot]
	node.SetBBox(bbox)
	node.SetChildNodes(slot+1, uint32(len(b.nodes)))

	return max(lDepth, rDepth)
}

// Calc the union of the item bounding boxes.
func (b *builder) bboxOf(indices []uint32) [2]types.Vec3 {
	bbox := b.items[indices[0]].BBox()
	for _, index := range indices[1:] {
		itemBBox := b.items[index].BBox()
		bbox[0] = types.MinVec3(bbox[0], itemBBox[0])
		bbox[1] = types.MaxVec3(bbox[1], itemBBox[1])
	}
	return bbox
}

// Calc the bounding box of the item centroids.
func (b *builder) centroidBBoxOf(indices []uint32) [2]types.Vec3 {
	center := b.items[indices[0]].Center()
	bbox := [2]types.Vec3{center, center}
	for _, index := range indices[1:] {
		center = b.items[index].Center()
		bbox[0] = types.MinVec3(bbox[0], center)
		bbox[1] = types.MaxVec3(bbox[1], center)
	}
	return bbox
}

// Select the axis along which the centroids are spread the most.
func splitAxis(centroidBBox [2]types.Vec3) Axis {
	extents := centroidBBox[1].Sub(centroidBBox[0])
	axis := XAxis
	if extents[1] > extents[0] {
		axis = YAxis
	}
	if extents[2] > extents[int(axis)] {
		axis = ZAxis
	}
	return axis
}
