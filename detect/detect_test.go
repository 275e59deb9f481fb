package detect

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	msa "github.com/jamesainslie/go-msa"
)

func TestNew_ModelNotFound(t *testing.T) {
	_, err := New("testdata/nonexistent.onnx", []string{"apex"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrModelNotFound)
}

func TestNew_NoClasses(t *testing.T) {
	_, err := New("testdata/landmark.onnx", nil)
	require.Error(t, err)
	assert.ErrorContains(t, err, "class names")
}

func TestFilter(t *testing.T) {
	kps := []Keypoint{
		{Label: "apex", Point: msa.Point{X: 10, Y: 20}, Score: 0.9},
		{Label: "apex", Point: msa.Point{X: 12, Y: 22}, Score: 0.3},
		{Label: "septum", Point: msa.Point{X: 5, Y: 5}, Score: 0.5},
		{Label: "septum", Point: msa.Point{X: 6, Y: 6}, Score: 0.1},
	}

	tests := []struct {
		name      string
		threshold float32
		want      msa.LabeledPointSet
	}{
		{
			name:      "keeps everything at zero threshold",
			threshold: 0,
			want: msa.LabeledPointSet{
				"apex":   {{X: 10, Y: 20}, {X: 12, Y: 22}},
				"septum": {{X: 5, Y: 5}, {X: 6, Y: 6}},
			},
		},
		{
			name:      "drops low-confidence keypoints",
			threshold: 0.4,
			want: msa.LabeledPointSet{
				"apex":   {{X: 10, Y: 20}},
				"septum": {{X: 5, Y: 5}},
			},
		},
		{
			name:      "threshold is inclusive",
			threshold: 0.5,
			want: msa.LabeledPointSet{
				"apex":   {{X: 10, Y: 20}},
				"septum": {{X: 5, Y: 5}},
			},
		},
		{
			name:      "drops whole labels",
			threshold: 0.8,
			want: msa.LabeledPointSet{
				"apex": {{X: 10, Y: 20}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Filter(kps, tt.threshold))
		})
	}
}

func TestFilter_Empty(t *testing.T) {
	set := Filter(nil, 0.5)
	assert.NotNil(t, set)
	assert.Empty(t, set)
}

func TestPreprocess(t *testing.T) {
	d := &Detector{
		inputSize: 4,
		mean:      [3]float32{0.5, 0.5, 0.5},
		std:       [3]float32{0.5, 0.5, 0.5},
	}

	// Uniform white image: every normalized value is (1 - 0.5) / 0.5 = 1.
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}

	pixels, sx, sy := d.preprocess(img)

	require.Len(t, pixels, 3*4*4)
	assert.Equal(t, 2.0, sx)
	assert.Equal(t, 2.0, sy)
	for i, v := range pixels {
		assert.InDeltaf(t, 1.0, float64(v), 1e-2, "pixel %d", i)
	}
}

func TestPreprocess_NonSquareScale(t *testing.T) {
	d := &Detector{
		inputSize: 4,
		mean:      [3]float32{0, 0, 0},
		std:       [3]float32{1, 1, 1},
	}

	img := image.NewRGBA(image.Rect(0, 0, 16, 8))
	pixels, sx, sy := d.preprocess(img)

	require.Len(t, pixels, 3*4*4)
	assert.Equal(t, 4.0, sx)
	assert.Equal(t, 2.0, sy)
	// Fully transparent black input normalizes to 0 everywhere.
	for _, v := range pixels {
		assert.LessOrEqual(t, math.Abs(float64(v)), 1e-6)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	assert.Equal(t, float32(0.25), cfg.threshold)
	assert.Equal(t, 512, cfg.inputSize)
	assert.Positive(t, cfg.poolSize)
	assert.NotNil(t, cfg.logger)
}

func TestOptions(t *testing.T) {
	cfg := defaultConfig()
	for _, opt := range []Option{
		WithScoreThreshold(0.6),
		WithInputSize(256),
		WithPoolSize(3),
		WithNormalization([3]float32{0, 0, 0}, [3]float32{1, 1, 1}),
	} {
		opt(&cfg)
	}

	assert.Equal(t, float32(0.6), cfg.threshold)
	assert.Equal(t, 256, cfg.inputSize)
	assert.Equal(t, 3, cfg.poolSize)
	assert.Equal(t, [3]float32{0, 0, 0}, cfg.mean)
	assert.Equal(t, [3]float32{1, 1, 1}, cfg.std)
}

func TestOptions_IgnoreInvalid(t *testing.T) {
	cfg := defaultConfig()
	WithInputSize(0)(&cfg)
	WithPoolSize(-1)(&cfg)
	WithLogger(nil)(&cfg)

	assert.Equal(t, 512, cfg.inputSize)
	assert.Positive(t, cfg.poolSize)
	assert.NotNil(t, cfg.logger)
}

func TestDetectorClose_NilPool(t *testing.T) {
	d := &Detector{}
	assert.NoError(t, d.Close())
}
