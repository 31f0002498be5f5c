package main

import (
	"flag"
	"fmt"
	"os"

	"spectral-renderer/internal/mesh"
)

func main() {
	phong := flag.Bool("phong", false, "Build with phong shading (synthesises missing normals)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <mesh.obj|mesh.obj.lz4>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	shading := mesh.Flat
	if *phong {
		shading = mesh.Phong
	}

	m, err := mesh.LoadObj(path, shading)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	m.Build()

	bounds := m.Bounds()
	fmt.Printf("%s\n", path)
	fmt.Printf("  vertices: %d\n", len(m.Vertices()))
	fmt.Printf("  normals:  %d\n", len(m.Normals()))
	fmt.Printf("  faces:    %d\n", len(m.Faces()))
	fmt.Printf("  bounds:   min %v  max %v\n", bounds.Min, bounds.Max)
}
