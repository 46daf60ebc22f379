package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/auriga-render/auriga/asset/compiler/input"
	"github.com/auriga-render/auriga/asset/scene"
	"github.com/auriga-render/auriga/asset/texture"
	"github.com/auriga-render/auriga/types"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

type sceneBuilder struct {
	usage string
	build func() *input.Scene
}

var builtinScenes = map[string]sceneBuilder{
	"cornell": {
		usage: "the classic cornell box with two boxes and a ceiling light",
		build: cornellScene,
	},
	"triangle": {
		usage: "a single triangle backlit by an emissive quad",
		build: triangleScene,
	},
}

func buildScene(name string) (*input.Scene, error) {
	builder, exists := builtinScenes[name]
	if !exists {
		return nil, fmt.Errorf("unknown scene %q; run the scenes command for the available ones", name)
	}
	return builder.build(), nil
}

// List the builtin scenes.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	names := make([]string, 0, len(builtinScenes))
	for name := range builtinScenes {
		names = append(names, name)
	}
	sort.Strings(names)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Description"})
	for _, name := range names {
		table.Append([]string{name, builtinScenes[name].usage})
	}
	table.Render()
	return nil
}

// The classic cornell box. Dimensions follow the published data set; all
// quads are wound so their normals face the interior.
func cornellScene() *input.Scene {
	dx := types.XYZ(556, 0, 0)
	dy := types.XYZ(0, 548.8, 0)
	dz := types.XYZ(0, 0, 559.2)

	camera := scene.NewCamera(40)
	camera.Position = types.XYZ(278, 273, -800)
	camera.LookAt = types.XYZ(278, 273, 0)
	camera.Up = types.XYZ(0, 1, 0)

	sc := &input.Scene{
		Meshes: []*input.Mesh{
			input.NewQuad("floor", types.XYZ(0, 0, 0), dz, dx),
			input.NewQuad("ceiling", types.XYZ(0, 548.8, 0), dx, dz),
			input.NewQuad("back wall", types.XYZ(0, 0, 559.2), dy, dx),
			input.NewQuad("left wall", types.XYZ(0, 0, 0), dy, dz),
			input.NewQuad("right wall", types.XYZ(556, 0, 0), dz, dy),
			input.NewQuad("light", types.XYZ(213, 548, 227), types.XYZ(0, 0, 105), types.XYZ(130, 0, 0)),
			input.NewBox("short box", types.XYZ(130, 0, 65), types.XYZ(295, 165, 230)),
			input.NewBox("tall box", types.XYZ(265, 0, 295), types.XYZ(430, 330, 460)),
		},
		Materials: []input.Material{
			input.Diffuse("white", types.XYZ(0.73, 0.73, 0.73)),
			input.Diffuse("red", types.XYZ(0.65, 0.05, 0.05)),
			input.Diffuse("green", types.XYZ(0.12, 0.45, 0.15)),
			input.Emissive("light", types.XYZ(1, 0.78, 0.54), 15),
			checkered("checkers", types.XYZ(0.73, 0.73, 0.73)),
		},
		Instances: []input.Instance{
			{MeshIndex: 0, MaterialIndex: 4, Transform: types.Ident4()},
			{MeshIndex: 1, MaterialIndex: 0, Transform: types.Ident4()},
			{MeshIndex: 2, MaterialIndex: 0, Transform: types.Ident4()},
			{MeshIndex: 3, MaterialIndex: 1, Transform: types.Ident4()},
			{MeshIndex: 4, MaterialIndex: 2, Transform: types.Ident4()},
			{MeshIndex: 5, MaterialIndex: 3, Transform: types.Ident4()},
			{MeshIndex: 6, MaterialIndex: 0, Transform: rotateAbout(-0.29, 212.5, 147.5)},
			{MeshIndex: 7, MaterialIndex: 0, Transform: rotateAbout(0.39, 347.5, 377.5)},
		},
		Camera: camera,
	}
	sc.Textures = []*texture.Texture{
		texture.NewCheckerboard(512, 512, 64, types.XYZ(1, 1, 1), types.XYZ(0.5, 0.5, 0.5)),
	}
	return sc
}

func checkered(name string, color types.Vec3) input.Material {
	mat := input.Diffuse(name, color)
	mat.BaseColorTexture = 0
	return mat
}

// Rotate around the vertical axis through (x, 0, z).
func rotateAbout(angle, x, z float32) types.Mat4 {
	return types.Translate3D(x, 0, z).
		Mul4(types.HomogRotate3DY(angle)).
		Mul4(types.Translate3D(-x, 0, -z))
}

// A minimal regression scene: one triangle in front of the camera lit from
// behind by an emissive quad.
func triangleScene() *input.Scene {
	camera := scene.NewCamera(60)
	camera.Position = types.XYZ(0.25, 0.25, -3)
	camera.LookAt = types.XYZ(0.25, 0.25, 0)
	camera.Up = types.XYZ(0, 1, 0)

	return &input.Scene{
		Meshes: []*input.Mesh{
			input.NewTriangle("triangle", types.XYZ(0, 0, 0), types.XYZ(1, 0, 0), types.XYZ(0, 1, 0)),
			input.NewQuad("light", types.XYZ(-2, -2, 2), types.XYZ(0, 4, 0), types.XYZ(4, 0, 0)),
		},
		Materials: []input.Material{
			input.Diffuse("gray", types.XYZ(0.7, 0.7, 0.7)),
			input.Emissive("light", types.XYZ(1, 1, 1), 5),
		},
		Instances: []input.Instance{
			{MeshIndex: 0, MaterialIndex: 0, Transform: types.Ident4()},
			{MeshIndex: 1, MaterialIndex: 1, Transform: types.Ident4()},
		},
		Camera: camera,
	}
}
