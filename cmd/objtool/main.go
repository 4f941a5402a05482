// objtool is a CLI utility for inspecting OBJ models and converting them to glTF.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/lumen/internal/engine/geometry"
	"github.com/Faultbox/lumen/internal/export"
	"github.com/Faultbox/lumen/pkg/formats"
	"github.com/Faultbox/lumen/pkg/vertex"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "layout":
		cmdLayout(args)
	case "export":
		cmdExport(args)
	case "convert":
		cmdConvert(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`objtool - OBJ model utility

Usage:
  objtool <command> [options]

Commands:
  info <file.obj>...                 Show model statistics
  layout <mask>                      Show the vertex layout of a channel mask
  export [-mode m] <in.obj> <out>    Export to .gltf or .glb
  convert [-j n] [-glb] <dir> <out>  Convert every OBJ below dir

Masks are names joined by '|' (position, normal, color, fcolor, tex1, ...),
"standard", or a number such as 0x4b.

Examples:
  objtool info models/cube.obj models/teapot.obj
  objtool layout "position|tex1|color"
  objtool export models/cube.obj cube.glb
  objtool convert -j 8 models/ out/`)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objtool info <file.obj>...")
		os.Exit(1)
	}

	// Parse all files in parallel, print in argument order.
	models := make([]*formats.OBJ, len(args))
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, path := range args {
		g.Go(func() error {
			obj, err := formats.ParseOBJFile(path)
			if err != nil {
				return err
			}
			models[i] = obj
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fail(err)
	}

	for i, obj := range models {
		if i > 0 {
			fmt.Println()
		}
		mesh := geometry.MeshFromOBJ(args[i], obj)
		lo, hi := mesh.Bounds()

		fmt.Printf("File:       %s\n", args[i])
		fmt.Printf("Positions:  %d\n", len(obj.Positions))
		fmt.Printf("TexCoords:  %d\n", len(obj.TexCoords))
		fmt.Printf("Normals:    %d\n", len(obj.Normals))
		fmt.Printf("Faces:      %d\n", obj.FaceCount())
		fmt.Printf("Vertices:   %d (de-indexed)\n", mesh.VertexCount())
		fmt.Printf("Bounds:     (%.3f, %.3f, %.3f) - (%.3f, %.3f, %.3f)\n",
			lo[0], lo[1], lo[2], hi[0], hi[1], hi[2])
		fmt.Printf("Groups:     %d\n", len(obj.Groups))
		for _, grp := range obj.Groups {
			name := grp.Name
			if name == "" {
				name = "(unnamed)"
			}
			fmt.Printf("  %-20s %d faces\n", name, len(grp.Faces))
		}
	}
}

func parseMask(s string) (vertex.Channel, error) {
	if n, err := strconv.ParseUint(s, 0, 32); err == nil {
		return vertex.Channel(n), nil
	}
	return vertex.ParseChannels(s)
}

func cmdLayout(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objtool layout <mask>")
		os.Exit(1)
	}

	mask, err := parseMask(args[0])
	if err != nil {
		fail(err)
	}
	f := vertex.NewFormat(mask)

	fmt.Printf("Mask:   %s (0x%x)\n", mask, uint32(mask))
	fmt.Printf("Stride: %d bytes packed\n", f.Stride())
	fmt.Println()
	fmt.Println("Packed declarations:")
	offsets := f.Offsets()
	for i, d := range f.Declarations() {
		fmt.Printf("  %-8s %-7s offset %2d  size %2d\n", d.Channel, d.Type, offsets[i], d.Type.Size())
	}

	bindings, err := vertex.Bindings(f, geometry.Record)
	if err != nil {
		fail(err)
	}
	fmt.Println()
	fmt.Printf("GPU bindings (record of %d bytes):\n", geometry.VertexSize)
	for _, b := range bindings {
		fmt.Printf("  %s\n", b)
	}
}

func cmdExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	modeName := fs.String("mode", "triangles", "Primitive mode (points, lines, line_strip, triangles, ...)")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: objtool export [-mode m] <in.obj> <out.gltf|out.glb>")
		os.Exit(1)
	}

	mode, err := geometry.ParseDrawMode(*modeName)
	if err != nil {
		fail(err)
	}
	mesh, err := geometry.LoadOBJ(fs.Arg(0))
	if err != nil {
		fail(err)
	}
	doc, err := export.MeshDocument(mesh, mode)
	if err != nil {
		fail(err)
	}
	if err := export.WriteFile(doc, fs.Arg(1)); err != nil {
		fail(err)
	}

	fmt.Printf("Exported: %s (%d surfaces, %d vertices, %d indices)\n",
		fs.Arg(1), len(mesh.Surfaces()), mesh.VertexCount(), mesh.IndexCount())
}

func cmdConvert(args []string) {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	workers := fs.Int("j", runtime.NumCPU(), "Parallel conversions")
	binary := fs.Bool("glb", false, "Write .glb instead of .gltf")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: objtool convert [-j n] [-glb] <dir> <output_dir>")
		os.Exit(1)
	}

	ext := ".gltf"
	if *binary {
		ext = ".glb"
	}
	jobs, err := export.PlanDir(fs.Arg(0), fs.Arg(1), ext)
	if err != nil {
		fail(err)
	}
	if len(jobs) == 0 {
		fmt.Fprintln(os.Stderr, "No OBJ files found")
		return
	}

	bar := progressbar.Default(int64(len(jobs)), "converting")
	err = export.ConvertAll(context.Background(), jobs, *workers, func(export.Job) {
		bar.Add(1)
	})
	bar.Close()
	if err != nil {
		fail(err)
	}

	fmt.Fprintf(os.Stderr, "\nConverted %d files\n", len(jobs))
}
