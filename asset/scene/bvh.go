package scene

import "github.com/auriga-render/auriga/types"

// Flattened BVH nodes use an entry/exit index encoding so that traversal
// needs no stack:
//
//   - If the high bit of EntryIndex is set the node is a leaf; clearing the
//     bit yields the index of the leaf item (a mesh instance for the top
//     level tree, a triangle primitive for a bottom level tree). After
//     processing a leaf, traversal jumps to ExitIndex.
//   - Otherwise EntryIndex is the node to visit when the ray hits this
//     node's box and ExitIndex is the node to jump to when it misses
//     (sibling or ancestor continuation).
//
// Traversal terminates when the node index reaches the node count. Indices
// inside a bottom level tree are relative to that tree's node window.
const LeafFlag uint32 = 0x80000000

// Sentinel for "no instance/primitive/texture".
const AbsentIndex uint32 = 0xffffffff

// A single flattened BVH node. Leaf nodes carry no meaningful bounding box;
// they are only ever reached through their parent's box test.
type BvhNode struct {
	Min        types.Vec3
	EntryIndex uint32
	Max        types.Vec3
	ExitIndex  uint32
}

// Set bounding box.
func (n *BvhNode) SetBBox(bbox [2]types.Vec3) {
	n.Min = bbox[0]
	n.Max = bbox[1]
}

// Mark node as internal with the given hit/miss jump targets.
func (n *BvhNode) SetChildNodes(entryIndex, exitIndex uint32) {
	n.EntryIndex = entryIndex
	n.ExitIndex = exitIndex
}

// Mark node as a leaf pointing at itemIndex.
func (n *BvhNode) SetLeaf(itemIndex, exitIndex uint32) {
	n.EntryIndex = itemIndex | LeafFlag
	n.ExitIndex = exitIndex
}

// Check whether this node is a leaf.
func (n *BvhNode) IsLeaf() bool {
	return n.EntryIndex&LeafFlag != 0
}

// Get the index of the item stored in a leaf node.
func (n *BvhNode) LeafItem() uint32 {
	return n.EntryIndex &^ LeafFlag
}
