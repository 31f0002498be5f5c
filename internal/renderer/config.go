package renderer

import "runtime"

// Format names an image output encoder.
type Format string

const (
	FormatPNG  Format = "png"
	FormatWebP Format = "webp"
	FormatTGA  Format = "tga"
)

// Config holds the render job settings.
type Config struct {
	// Output is the path stem images and checkpoints are written next to.
	Output string

	// Passes is the number of full sensor sweeps; total samples per pixel.
	Passes int

	// Threads is the worker count; 0 selects the available cores.
	Threads int

	// Supersample renders at an N-fold resolution and downscales on emit.
	// Values below 1 mean no supersampling.
	Supersample int

	// Formats lists the image encoders to run on emit; defaults to PNG.
	Formats []Format
}

// Resolve fills unset fields with their defaults.
func (c *Config) Resolve() {
	if c.Passes <= 0 {
		c.Passes = 1
	}
	if c.Threads <= 0 {
		c.Threads = runtime.NumCPU()
	}
	if c.Supersample < 1 {
		c.Supersample = 1
	}
	if len(c.Formats) == 0 {
		c.Formats = []Format{FormatPNG}
	}
}
