package bvh

import (
	"testing"

	"github.com/auriga-render/auriga/types"
)

type testVolume struct {
	min types.Vec3
	max types.Vec3
}

func (tv testVolume) BBox() [2]types.Vec3 {
	return [2]types.Vec3{tv.min, tv.max}
}

func (tv testVolume) Center() types.Vec3 {
	return tv.min.Add(tv.max).Mul(0.5)
}

func makeVolumes() []BoundedVolume {
	specs := []testVolume{
		{types.XYZ(-2, 0, -2), types.XYZ(-1, 1, -1)},
		{types.XYZ(1, 0, -2), types.XYZ(2, 1, -1)},
		{types.XYZ(-2, 0, 1), types.XYZ(-1, 1, 2)},
		{types.XYZ(1, 0, 1), types.XYZ(2, 1, 2)},
	}

	itemList := make([]BoundedVolume, len(specs))
	for idx, s := range specs {
		itemList[idx] = s
	}
	return itemList
}

func TestBuildNodeCount(t *testing.T) {
	itemList := makeVolumes()
	nodes := Build(itemList)

	// Single-item leaves: n leaves and n-1 internal nodes
	expCount := 2*len(itemList) - 1
	if len(nodes) != expCount {
		t.Fatalf("expected bvh tree to have %d nodes; got %d", expCount, len(nodes))
	}

	if Build(nil) != nil {
		t.Fatal("expected an empty work list to produce no nodes")
	}
}

func TestBuildEntryExitEncoding(t *testing.T) {
	itemList := makeVolumes()
	nodes := Build(itemList)
	nodeCount := uint32(len(nodes))

	seenItems := make(map[uint32]int)
	for slot, node := range nodes {
		if node.IsLeaf() {
			item := node.LeafItem()
			if item >= uint32(len(itemList)) {
				t.Fatalf("[node %d] leaf item %d out of range", slot, item)
			}
			seenItems[item]++
			if node.ExitIndex != uint32(slot)+1 {
				t.Fatalf("[node %d] expected leaf exit index %d; got %d", slot, slot+1, node.ExitIndex)
			}
			continue
		}

		// An internal node's entry is the next slot in depth-first order;
		// its exit skips past the whole subtree.
		if node.EntryIndex != uint32(slot)+1 {
			t.Fatalf("[node %d] expected internal entry index %d; got %d", slot, slot+1, node.EntryIndex)
		}
		if node.ExitIndex <= node.EntryIndex || node.ExitIndex > nodeCount {
			t.Fatalf("[node %d] expected exit index in (%d, %d]; got %d", slot, node.EntryIndex, nodeCount, node.ExitIndex)
		}
	}

	for idx := range itemList {
		if seenItems[uint32(idx)] != 1 {
			t.Fatalf("expected item %d to appear in exactly one leaf; found %d", idx, seenItems[uint32(idx)])
		}
	}
}

func TestBuildBBoxContainment(t *testing.T) {
	itemList := makeVolumes()
	nodes := Build(itemList)

	root := nodes[0]
	for idx, item := range itemList {
		bbox := item.BBox()
		for axis := 0; axis < 3; axis++ {
			if bbox[0][axis] < root.Min[axis] || bbox[1][axis] > root.Max[axis] {
				t.Fatalf("expected the root bbox to contain item %d", idx)
			}
		}
	}
}

func TestBuildSingleItem(t *testing.T) {
	nodes := Build(makeVolumes()[:1])
	if len(nodes) != 1 {
		t.Fatalf("expected a single leaf node; got %d nodes", len(nodes))
	}
	if !nodes[0].IsLeaf() || nodes[0].LeafItem() != 0 {
		t.Fatal("expected the root to be a leaf pointing at item 0")
	}
	if nodes[0].ExitIndex != 1 {
		t.Fatalf("expected the root exit index to terminate traversal; got %d", nodes[0].ExitIndex)
	}
}
