package texture

import (
	"fmt"
	"image"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-pano/internal/logger"
)

// Result is the outcome of one asynchronous decode.
type Result struct {
	Gen   uint64
	Index int
	Path  string
	Image *image.RGBA
	Err   error
}

// ReadFunc returns the raw bytes of a resource.
type ReadFunc func(path string) ([]byte, error)

// Decoder runs decodes on background goroutines and posts results to a channel.
// Results are consumed by a single owner, typically the render loop.
type Decoder struct {
	read    ReadFunc
	results chan Result
	log     *zap.Logger
}

// NewDecoder creates a decoder reading through read (os.ReadFile when nil).
// buffer bounds the number of completions that may wait unconsumed.
func NewDecoder(read ReadFunc, buffer int) *Decoder {
	if read == nil {
		read = os.ReadFile
	}
	if buffer < 1 {
		buffer = 1
	}
	return &Decoder{
		read:    read,
		results: make(chan Result, buffer),
		log:     logger.Named("decoder"),
	}
}

// Start decodes path in the background. There is no retry, timeout or
// cancellation; the result is always delivered.
func (d *Decoder) Start(index int, path string, gen uint64) {
	go func() {
		res := Result{Gen: gen, Index: index, Path: path}
		data, err := d.read(path)
		if err != nil {
			res.Err = fmt.Errorf("reading %s: %w", path, err)
		} else if res.Image, err = DecodePath(path, data); err != nil {
			res.Err = err
		}

		if res.Err == nil {
			b := res.Image.Bounds()
			d.log.Debug("decoded",
				zap.Int("index", index),
				zap.String("path", path),
				zap.Int("width", b.Dx()),
				zap.Int("height", b.Dy()))
		}
		d.results <- res
	}()
}

// Results is the completion channel.
func (d *Decoder) Results() <-chan Result {
	return d.results
}
