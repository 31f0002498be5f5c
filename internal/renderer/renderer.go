// Package renderer bundles camera, sensor, integrator and scene into one
// render job and emits the accumulated image.
package renderer

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"math/rand"
	"os"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/draw"

	"spectral-renderer/internal/camera"
	"spectral-renderer/internal/integrator"
	"spectral-renderer/internal/scene"
	"spectral-renderer/internal/sensor"
)

// Renderer owns everything one render job needs.
type Renderer struct {
	Config     Config
	Camera     camera.Camera
	Sensor     *sensor.Sensor
	Integrator integrator.Integrator
	Scene      *scene.Scene
}

// New creates a renderer. When sens is nil, the sensor is derived from the
// camera resolution.
func New(cfg Config, cam camera.Camera, sens *sensor.Sensor, integ integrator.Integrator, sc *scene.Scene) *Renderer {
	cfg.Resolve()

	if sens == nil {
		w, h := cam.Resolution()
		sens = sensor.New(w, h)
	}

	return &Renderer{
		Config:     cfg,
		Camera:     cam,
		Sensor:     sens,
		Integrator: integ,
		Scene:      sc,
	}
}

// RenderTile locks the tile and integrates one primary ray per pixel.
func (r *Renderer) RenderTile(index int, rng *rand.Rand) {
	tile := r.Sensor.Tile(index)
	tile.Lock()
	defer tile.Unlock()

	for i := range tile.Pixels {
		px := &tile.Pixels[i]
		ray := r.Camera.PrimaryRay(px.X, px.Y, rng)
		r.Integrator.Integrate(r.Scene, ray, px, rng)
	}
}

// Image converts the sensor means into a 16-bit RGBA image at sensor
// resolution.
func (r *Renderer) Image() *image.NRGBA64 {
	img := image.NewNRGBA64(image.Rect(0, 0, r.Sensor.Width, r.Sensor.Height))

	for _, tile := range r.Sensor.Tiles {
		tile.Lock()
		for i := range tile.Pixels {
			px := &tile.Pixels[i]
			rgb := px.Average.ToRGB16()
			offset := px.Y*img.Stride + px.X*8

			img.Pix[offset+0] = uint8(rgb[0] >> 8)
			img.Pix[offset+1] = uint8(rgb[0])
			img.Pix[offset+2] = uint8(rgb[1] >> 8)
			img.Pix[offset+3] = uint8(rgb[1])
			img.Pix[offset+4] = uint8(rgb[2] >> 8)
			img.Pix[offset+5] = uint8(rgb[2])
			img.Pix[offset+6] = 0xff
			img.Pix[offset+7] = 0xff
		}
		tile.Unlock()
	}

	return img
}

// outputImage downsamples the sensor image back to the camera target size
// when supersampling is active.
func (r *Renderer) outputImage() image.Image {
	img := r.Image()
	if r.Config.Supersample <= 1 {
		return img
	}

	w := r.Sensor.Width / r.Config.Supersample
	h := r.Sensor.Height / r.Config.Supersample

	dst := image.NewNRGBA64(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// SaveImage writes the accumulated image in every configured format.
// appendix < 0 writes to the plain output stem. Write failures are logged;
// the remaining formats are still attempted.
func (r *Renderer) SaveImage(appendix int) {
	slog.Info("saving image", "output", r.Config.Output)
	img := r.outputImage()

	for _, format := range r.Config.Formats {
		var path string
		if appendix < 0 {
			path = fmt.Sprintf("%s.%s", r.Config.Output, format)
		} else {
			path = fmt.Sprintf("%s-%d.%s", r.Config.Output, appendix, format)
		}

		if err := writeImage(path, format, img); err != nil {
			slog.Error("unable to save image", "path", path, "err", err)
			continue
		}
		slog.Info("saved image", "path", path)
	}
}

func writeImage(path string, format Format, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch format {
	case FormatPNG:
		// 16 bits per channel
		return png.Encode(f, img)
	case FormatWebP:
		return nativewebp.Encode(f, toNRGBA(img), nil)
	case FormatTGA:
		return tga.Encode(f, toNRGBA(img))
	default:
		return fmt.Errorf("renderer: unknown image format %q", format)
	}
}

// toNRGBA converts for the 8-bit encoders.
func toNRGBA(img image.Image) *image.NRGBA {
	if m, ok := img.(*image.NRGBA); ok {
		return m
	}
	dst := image.NewNRGBA(img.Bounds())
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}
