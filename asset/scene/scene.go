package scene

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"

	"github.com/auriga-render/auriga/asset/texture"
	"github.com/olekukonko/tablewriter"
)

// A compiled scene: the flat, read-only buffers consumed by the tracer
// kernels. Geometry is stored as a two-level hierarchy: InstanceNodes is a
// single flattened BVH over the mesh instances; MeshNodes concatenates one
// flattened BVH per mesh, addressed through each instance's MeshIndex
// window. Nothing in here is mutated while a frame is in flight.
type Scene struct {
	InstanceNodes []BvhNode
	Instances     []MeshInstance

	MeshNodes  []BvhNode
	Vertices   []Vertex
	Primitives []Primitive

	Materials []Material
	Textures  []*texture.Texture

	Camera *Camera
}

// Build a tabular representation of scene statistics.
func (sc *Scene) Stats() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Asset Type", "Asset", "Size"})
	table.Append([]string{"Geometry", "---", fmtSize(sc.Vertices, sc.Primitives, sc.MeshNodes)})
	table.Append([]string{"", "Vertices", fmtSize(sc.Vertices)})
	table.Append([]string{"", "Primitives", fmtSize(sc.Primitives)})
	table.Append([]string{"", "Mesh BVH", fmtSize(sc.MeshNodes)})
	table.Append([]string{" ", " ", " "})
	table.Append([]string{"Instances", "---", fmtSize(sc.Instances, sc.InstanceNodes)})
	table.Append([]string{"", "Mesh instances", fmtSize(sc.Instances)})
	table.Append([]string{"", "Instance BVH", fmtSize(sc.InstanceNodes)})
	table.Append([]string{" ", " ", " "})
	table.Append([]string{"Materials", "---", fmtSize(sc.Materials)})
	table.Append([]string{"Textures", "---", fmtTextureSize(sc.Textures)})
	table.SetFooter([]string{"Total", " ", strings.TrimLeft(fmtSizeBytes(
		sliceBytes(sc.Vertices)+sliceBytes(sc.Primitives)+sliceBytes(sc.MeshNodes)+
			sliceBytes(sc.Instances)+sliceBytes(sc.InstanceNodes)+sliceBytes(sc.Materials)+
			textureBytes(sc.Textures)), " ")})

	table.Render()
	return buf.String()
}

// Sum the total space used by a set of slices and return back a formatted
// value with the appropriate byte/kb/mb unit.
func fmtSize(items ...interface{}) string {
	var totalBytes float32
	for _, item := range items {
		totalBytes += sliceBytes(item)
	}
	return fmtSizeBytes(totalBytes)
}

func fmtTextureSize(textures []*texture.Texture) string {
	return fmtSizeBytes(textureBytes(textures))
}

func textureBytes(textures []*texture.Texture) float32 {
	var totalBytes float32
	for _, tex := range textures {
		totalBytes += float32(len(tex.Data))
	}
	return totalBytes
}

func sliceBytes(item interface{}) float32 {
	t := reflect.TypeOf(item)
	v := reflect.ValueOf(item)
	if v.Len() == 0 {
		return 0
	}
	return float32(int(t.Elem().Size()) * v.Len())
}

func fmtSizeBytes(totalBytes float32) string {
	if totalBytes < 1e3 {
		return fmt.Sprintf("%3d bytes", int(totalBytes))
	} else if totalBytes < 1e6 {
		return fmt.Sprintf("%3.1f kb", totalBytes/1e3)
	}
	return fmt.Sprintf("%5.1f mb", totalBytes/1e6)
}
