package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"image"
	"os"
	"path"
	"path/filepath"
	"strings"

	"pinboard/internal/middleware"
	"pinboard/internal/observability"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// maxImageDimension is the longest edge stored images are scaled down to.
const maxImageDimension = 1080

// ImageService stores uploaded images as WebP blobs on local disk and
// serves them under a public URL prefix.
type ImageService struct {
	dir      string
	baseURL  string
	maxBytes int64
	quality  float32
}

// NewImageService creates an image service writing into dir. The directory
// is created if missing.
func NewImageService(dir string, maxUploadMB int) (*ImageService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return &ImageService{
		dir:      dir,
		baseURL:  "/media",
		maxBytes: int64(maxUploadMB) * 1024 * 1024,
		quality:  85,
	}, nil
}

// Dir returns the blob directory, for mounting as a static route.
func (s *ImageService) Dir() string {
	return s.dir
}

// Upload decodes a base64 data URL, downscales the image if needed,
// re-encodes it as WebP and writes it to disk. Returns the public URL.
func (s *ImageService) Upload(ctx context.Context, dataURL string) (string, error) {
	raw, err := decodeDataURL(dataURL, s.maxBytes)
	if err != nil {
		observability.ImageUploads.WithLabelValues("rejected").Inc()
		return "", err
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		observability.ImageUploads.WithLabelValues("rejected").Inc()
		return "", fmt.Errorf("unsupported image data: %w", err)
	}

	img = downscale(img, maxImageDimension)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: s.quality}); err != nil {
		observability.ImageUploads.WithLabelValues("failed").Inc()
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	sum := sha256.Sum256(buf.Bytes())
	name := hex.EncodeToString(sum[:]) + ".webp"

	if err := os.WriteFile(filepath.Join(s.dir, name), buf.Bytes(), 0o644); err != nil {
		observability.ImageUploads.WithLabelValues("failed").Inc()
		return "", fmt.Errorf("failed to store image: %w", err)
	}

	observability.ImageUploads.WithLabelValues("success").Inc()
	middleware.Logger.InfoContext(ctx, "image stored",
		"name", name,
		"bytes", buf.Len(),
	)

	return s.baseURL + "/" + name, nil
}

// Delete removes a stored blob by its public URL. External URLs (anything
// not under the media prefix) are left alone.
func (s *ImageService) Delete(ctx context.Context, url string) error {
	if !strings.HasPrefix(url, s.baseURL+"/") {
		return nil
	}

	name := path.Base(url)
	if name == "." || name == "/" || strings.Contains(name, "..") {
		return fmt.Errorf("invalid media url %q", url)
	}

	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

// IsDataURL reports whether the value is an inline base64 image payload.
func IsDataURL(v string) bool {
	return strings.HasPrefix(v, "data:image/")
}

func decodeDataURL(dataURL string, maxBytes int64) ([]byte, error) {
	if !IsDataURL(dataURL) {
		return nil, fmt.Errorf("expected a data:image/ URL")
	}

	idx := strings.Index(dataURL, ",")
	if idx < 0 {
		return nil, fmt.Errorf("malformed data URL")
	}
	meta, payload := dataURL[:idx], dataURL[idx+1:]
	if !strings.Contains(meta, ";base64") {
		return nil, fmt.Errorf("only base64 data URLs are supported")
	}

	// base64 inflates by 4/3; reject before decoding.
	if int64(len(payload)) > maxBytes*4/3+4 {
		return nil, fmt.Errorf("image exceeds the %d byte upload limit", maxBytes)
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 image payload: %w", err)
	}
	return raw, nil
}

// downscale resizes img so its longest edge is at most maxDim, preserving
// aspect ratio. Smaller images pass through untouched.
func downscale(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}

	var nw, nh int
	if w >= h {
		nw = maxDim
		nh = h * maxDim / w
	} else {
		nh = maxDim
		nw = w * maxDim / h
	}
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
