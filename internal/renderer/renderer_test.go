package renderer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"spectral-renderer/internal/bxdf"
	"spectral-renderer/internal/camera"
	"spectral-renderer/internal/geometry"
	"spectral-renderer/internal/integrator"
	"spectral-renderer/internal/mathutil"
	"spectral-renderer/internal/sampler"
	"spectral-renderer/internal/scene"
	"spectral-renderer/internal/spectrum"
)

func testRenderer(t *testing.T, cfg Config) *Renderer {
	t.Helper()

	sc := scene.New()
	light := scene.SampleableSphere{Sphere: geometry.NewSphere(mathutil.Vec3{0, 0, 0}, 1)}
	sc.Add(scene.EmitterObject(scene.NewEmitter(light, bxdf.EmptyBSDF(), spectrum.Splat(1))))
	sc.Build()

	cam := camera.NewPerspective(
		mathutil.Vec3{0, 0, 5}, mathutil.Vec3{}, mathutil.Vec3{0, 1, 0},
		60, 32, 32, sampler.ConstantOffsets(0.5, 0.5),
	)
	integ := integrator.NewPath(2, sampler.RandomFloats(), integrator.All)

	return New(cfg, cam, nil, integ, sc)
}

func TestConfigResolveDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve()

	assert.Equal(t, 1, cfg.Passes)
	assert.Greater(t, cfg.Threads, 0)
	assert.Equal(t, 1, cfg.Supersample)
	assert.Equal(t, []Format{FormatPNG}, cfg.Formats)
}

func TestSensorDerivedFromCamera(t *testing.T) {
	r := testRenderer(t, Config{Output: "x", Passes: 1})

	assert.Equal(t, 32, r.Sensor.Width)
	assert.Equal(t, 32, r.Sensor.Height)
	assert.Equal(t, 4, r.Sensor.NumTiles())
}

func TestRenderTileAccumulates(t *testing.T) {
	r := testRenderer(t, Config{Output: "x", Passes: 1})
	rng := sampler.NewRand(1)

	r.RenderTile(0, rng)

	tile := r.Sensor.Tile(0)
	for i := range tile.Pixels {
		assert.Equal(t, uint32(1), tile.Pixels[i].Samples[0])
	}
}

func TestImageDimensionsAndCenterBrightness(t *testing.T) {
	r := testRenderer(t, Config{Output: "x", Passes: 1})
	rng := sampler.NewRand(1)

	for i := 0; i < r.Sensor.NumTiles(); i++ {
		r.RenderTile(i, rng)
	}

	img := r.Image()
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())

	// the emitter fills the image center
	center := img.NRGBA64At(16, 16)
	assert.Greater(t, center.R, uint16(0))
}

func TestSaveImageWritesAllFormats(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		Output:  filepath.Join(dir, "render"),
		Passes:  1,
		Formats: []Format{FormatPNG, FormatWebP, FormatTGA},
	}
	r := testRenderer(t, cfg)
	rng := sampler.NewRand(1)
	r.RenderTile(0, rng)

	r.SaveImage(-1)

	for _, ext := range []string{"png", "webp", "tga"} {
		assert.FileExists(t, filepath.Join(dir, "render."+ext))
	}
}
