package render

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"os"
	"path/filepath"
	"strings"
	"sync"

	xdraw "golang.org/x/image/draw"

	"github.com/beaconmenu/beacon/draw"
)

// Image size limits to prevent memory exhaustion from a hostile or
// buggy handler script.
const (
	maxImageWidth  = 4096
	maxImageHeight = 4096
)

// Format identifies the on-disk encoding of an image by its leading
// magic byte.
type Format int

const (
	Unknown Format = iota
	PNG
	JPEG
	GIF
)

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case JPEG:
		return "jpeg"
	case GIF:
		return "gif"
	}
	return "unknown"
}

// SniffFormat classifies a file by its first byte: 137 for PNG, 255
// for JPEG, 47 for GIF. Anything else is Unknown and the caller skips
// the image.
func SniffFormat(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return Unknown, err
	}
	defer f.Close()

	var magic [1]byte
	if _, err := f.Read(magic[:]); err != nil {
		return Unknown, err
	}
	switch magic[0] {
	case 137:
		return PNG, nil
	case 255:
		return JPEG, nil
	case 47:
		return GIF, nil
	}
	return Unknown, nil
}

// ExpandPath resolves a leading ~ and any $VAR references in an image
// path. Handler scripts emit paths the way shells write them.
func ExpandPath(path string) string {
	path = os.ExpandEnv(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	return path
}

// Cached holds one decoded image or the error that prevented decoding.
// Failed loads are cached too so a bad path in a handler's output does
// not hit the filesystem on every keystroke.
type Cached struct {
	Img    image.Image
	Width  int
	Height int
	Err    error
}

// ImageCache memoizes decoded images by their expanded path. Decoding
// happens inside the cache lock but never inside the surface lock, so
// a slow decode stalls only the frame that needs it.
type ImageCache struct {
	mu      sync.Mutex
	entries map[string]*Cached
}

func NewImageCache() *ImageCache {
	return &ImageCache{entries: make(map[string]*Cached)}
}

// Get returns the cached decode for path, loading it on first use.
func (c *ImageCache) Get(path string) *Cached {
	path = ExpandPath(path)

	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.entries[path]; ok {
		return cached
	}
	cached := load(path)
	c.entries[path] = cached
	return cached
}

func load(path string) *Cached {
	format, err := SniffFormat(path)
	if err != nil {
		return &Cached{Err: err}
	}
	if format == Unknown {
		return &Cached{Err: fmt.Errorf("%s: unrecognized image format", path)}
	}

	f, err := os.Open(path)
	if err != nil {
		return &Cached{Err: err}
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return &Cached{Err: fmt.Errorf("decode %s: %w", path, err)}
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxImageWidth || h > maxImageHeight {
		return &Cached{Err: fmt.Errorf("%s: image too large: %dx%d", path, w, h)}
	}
	return &Cached{Img: img, Width: w, Height: h}
}

// allocDrawImage converts src, scaled to (w, h), into a device image
// ready for compositing. The caller frees the returned image after
// drawing it.
func allocDrawImage(display draw.Display, src image.Image, w, h int) (draw.Image, error) {
	bounds := src.Bounds()
	if w != bounds.Dx() || h != bounds.Dy() {
		scaled := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.BiLinear.Scale(scaled, scaled.Bounds(), src, bounds, xdraw.Src, nil)
		src = scaled
	}

	img, err := display.AllocImage(image.Rect(0, 0, w, h), draw.RGBA32, false, 0)
	if err != nil {
		return nil, err
	}
	if _, err := img.Load(image.Rect(0, 0, w, h), rgbaBytes(src)); err != nil {
		img.Free()
		return nil, err
	}
	return img, nil
}

// rgbaBytes flattens src into r8g8b8a8 pixel data. The channel
// descriptor orders red most significant, so each pixel is stored
// little-endian as a, b, g, r.
func rgbaBytes(src image.Image) []byte {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	data := make([]byte, 0, w*h*4)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := src.At(x, y).RGBA()
			data = append(data, byte(a>>8), byte(b>>8), byte(g>>8), byte(r>>8))
		}
	}
	return data
}
