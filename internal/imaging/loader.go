package imaging

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/ironsheep/image-size-mcp/internal/imagesize"
)

// Sizer reads a stream until it can report the image's dimensions.
// *probe.Prober satisfies it.
type Sizer interface {
	ProbeReader(ctx context.Context, r io.Reader) (*imagesize.Dimensions, error)
}

// ImageCache provides thread-safe caching of detected image dimensions to
// avoid re-reading files.
//
// The cache stores the *imagesize.Dimensions found for each file path. Only
// the start of a file is read: the Sizer stops as soon as the header parses,
// so a multi-gigabyte TIFF costs the same as a thumbnail.
//
// ImageCache is safe for concurrent use by multiple goroutines. All methods use
// appropriate locking to prevent data races.
//
// # Staleness
//
// Entries are keyed by path alone. A file rewritten in place keeps its old
// entry until Evict() or Clear() is called.
//
// # Example Usage
//
//	cache := imaging.NewImageCache(probe.New(nil))
//	dims, err := cache.Load(ctx, "/path/to/image.heic")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(dims.Width, dims.Height)
//	cache.Evict("/path/to/image.heic") // Optional: force a re-read
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]*imagesize.Dimensions
	sizer  Sizer
}

// NewImageCache creates and initializes a new empty cache that sizes files
// with sizer.
func NewImageCache(sizer Sizer) *ImageCache {
	return &ImageCache{
		images: make(map[string]*imagesize.Dimensions),
		sizer:  sizer,
	}
}

// Load retrieves dimensions from the cache or reads them from disk if not
// cached.
//
// Parameters:
//   - ctx: Bounds the read. Cached entries are returned even if ctx is done.
//   - path: Absolute or relative file path to the image. Any format
//     imagesize recognizes is accepted.
//
// Returns:
//   - *imagesize.Dimensions: The detected size. It is shared with the cache
//     and must not be modified.
//   - error: Non-nil if the file cannot be opened or its header cannot be
//     parsed. Failures are not cached.
//
// The entry is cached using the exact path string provided. Different paths to
// the same file (e.g., relative vs absolute) will result in separate entries.
func (c *ImageCache) Load(ctx context.Context, path string) (*imagesize.Dimensions, error) {
	c.mu.RLock()
	if dims, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return dims, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	dims, err := c.sizer.ProbeReader(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to read image size: %w", err)
	}

	c.mu.Lock()
	c.images[path] = dims
	c.mu.Unlock()

	return dims, nil
}

// Clear removes all entries from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]*imagesize.Dimensions)
	c.mu.Unlock()
}

// Evict removes a specific entry from the cache by its path.
//
// If the path is not in the cache, this method does nothing.
// After eviction, the next Load() call for this path will read from disk.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// ImageInfo contains metadata about an image file, taken from its header.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the detected type tag ("png", "jpg", "avif", "bigtiff", ...).
	// It comes from the file's contents, never its extension.
	Format string `json:"format"`

	// Orientation is the EXIF orientation (1-8), omitted when absent.
	Orientation int `json:"orientation,omitempty"`

	// SubImages counts the images in a multi-image container (ICO, CUR,
	// ICNS, HEIF). It is omitted for single-image files.
	SubImages int `json:"sub_images,omitempty"`

	// Compression is the TIFF compression tag, omitted when absent.
	Compression int `json:"compression,omitempty"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image's dimensions and returns them together with
// the ancillary header fields and the file size.
//
// Parameters:
//   - ctx: Bounds the read.
//   - cache: The image cache to use for loading. Must not be nil.
//   - path: Path to the image file.
//
// Returns:
//   - *ImageInfo: Metadata about the image.
//   - error: Non-nil if the header cannot be read or the file cannot be stat'd.
func LoadImageInfo(ctx context.Context, cache *ImageCache, path string) (*ImageInfo, error) {
	dims, err := cache.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	return &ImageInfo{
		Width:         dims.Width,
		Height:        dims.Height,
		Format:        dims.Type,
		Orientation:   dims.Orientation,
		SubImages:     len(dims.Images),
		Compression:   dims.Compression,
		FileSizeBytes: stat.Size(),
	}, nil
}

// DimensionsResult contains the width and height of an image.
//
// This is a lightweight result type for when only dimensions are needed,
// without the additional metadata provided by ImageInfo.
type DimensionsResult struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`
}

// GetDimensions returns the dimensions of an image without additional metadata.
func GetDimensions(ctx context.Context, cache *ImageCache, path string) (*DimensionsResult, error) {
	dims, err := cache.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	return &DimensionsResult{
		Width:  dims.Width,
		Height: dims.Height,
	}, nil
}
