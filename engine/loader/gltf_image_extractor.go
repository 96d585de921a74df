package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/material"
	"go.uber.org/zap"
)

// gltfImageExtractorImpl is the implementation of the gltfImageExtractor interface.
type gltfImageExtractorImpl struct {
	parser  gltfParser
	workers int
	log     *zap.Logger
}

// gltfImageExtractor decodes the images a glTF document references.
type gltfImageExtractor interface {
	// ExtractImage decodes one image.
	//
	// Parameters:
	//   - imageIndex: the index of the image in the document
	//
	// Returns:
	//   - *material.Image: the decoded image
	//   - error: ErrUnsupportedImageFormat, ErrNotYetSupported, ErrIO or ErrInvalidDocument
	ExtractImage(imageIndex int) (*material.Image, error)

	// ExtractAllImages decodes every image, in parallel when more than one worker is configured.
	// Results are in declaration order; the error of the lowest failing index is returned.
	//
	// Returns:
	//   - []*material.Image: the decoded images
	//   - error: the first failure in declaration order
	ExtractAllImages() ([]*material.Image, error)
}

var _ gltfImageExtractor = &gltfImageExtractorImpl{}

// newGLTFImageExtractor creates a new image extractor for a parsed document.
//
// Parameters:
//   - parser: the parser containing a loaded document
//   - workers: the number of parallel decoders, 1 or less decodes sequentially
//   - log: logger for decode diagnostics
//
// Returns:
//   - gltfImageExtractor: the image extractor
func newGLTFImageExtractor(parser gltfParser, workers int, log *zap.Logger) gltfImageExtractor {
	return &gltfImageExtractorImpl{parser: parser, workers: workers, log: log}
}

func (e *gltfImageExtractorImpl) ExtractAllImages() ([]*material.Image, error) {
	n := len(e.parser.Document().Images)
	images := make([]*material.Image, n)
	errs := make([]error, n)

	if e.workers <= 1 || n < 2 {
		for i := range images {
			img, err := e.ExtractImage(i)
			if err != nil {
				return nil, err
			}
			images[i] = img
		}
		return images, nil
	}

	// Workers exit once the closed task channel drains.
	tasks := make(chan worker.Task, n)
	stop := make(chan int)
	for id := range min(e.workers, n) {
		worker.NewWorker(id, tasks, stop, 0, nil).Start()
	}

	var wg sync.WaitGroup
	for i := range images {
		wg.Add(1)
		idx := i
		tasks <- worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				images[idx], errs[idx] = e.ExtractImage(idx)
				return nil, errs[idx]
			},
		}
	}
	close(tasks)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return images, nil
}

func (e *gltfImageExtractorImpl) ExtractImage(imageIndex int) (*material.Image, error) {
	doc := e.parser.Document()
	if imageIndex < 0 || imageIndex >= len(doc.Images) || doc.Images[imageIndex] == nil {
		return nil, fmt.Errorf("image %d out of range: %w", imageIndex, ErrInvalidDocument)
	}
	img := doc.Images[imageIndex]

	var (
		data []byte
		want material.ImageFormat
		err  error
	)
	switch {
	case img.BufferView != nil:
		return nil, fmt.Errorf("image %d stored in a buffer view: %w", imageIndex, ErrNotYetSupported)
	case img.URI == "":
		return nil, fmt.Errorf("image %d has neither uri nor bufferView: %w", imageIndex, ErrInvalidDocument)
	case img.IsEmbeddedResource():
		data, err = img.MarshalData()
		if err != nil {
			return nil, fmt.Errorf("image %d data URI: %w: %w", imageIndex, ErrMalformedDocument, err)
		}
		want = material.ImageFormatJPEG
		if strings.HasPrefix(img.URI, "data:image/png") {
			want = material.ImageFormatPNG
		}
	case strings.HasPrefix(img.URI, "data:"):
		mediaType, _, _ := strings.Cut(img.URI, ",")
		return nil, fmt.Errorf("image %d %s: %w", imageIndex, mediaType, ErrUnsupportedImageFormat)
	default:
		path := common.ResolvePath(e.parser.BaseDir(), img.URI)
		want, err = gltfImageFormatFromExt(path)
		if err != nil {
			return nil, fmt.Errorf("image %d: %w", imageIndex, err)
		}
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("image %d: read %s: %w: %w", imageIndex, path, ErrIO, err)
		}
	}

	sniffed, err := material.DetectImageFormat(data)
	if err != nil {
		return nil, fmt.Errorf("image %d: %w: %w", imageIndex, ErrUnsupportedImageFormat, err)
	}
	if sniffed != want {
		return nil, fmt.Errorf("image %d declared %s but contains %s: %w", imageIndex, want, sniffed, ErrUnsupportedImageFormat)
	}

	decoded, err := material.DecodeImage(data, want)
	if err != nil {
		return nil, fmt.Errorf("image %d: %w: %w", imageIndex, ErrUnsupportedImageFormat, err)
	}

	e.log.Debug("decoded image",
		zap.Int("image", imageIndex),
		zap.Stringer("format", want),
		zap.Uint32("width", decoded.Width),
		zap.Uint32("height", decoded.Height),
		zap.Stringer("color", decoded.ColorType),
	)
	return decoded, nil
}

// gltfImageFormatFromExt maps a file extension, case-insensitively, to an image format.
func gltfImageFormatFromExt(path string) (material.ImageFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return material.ImageFormatPNG, nil
	case ".jpg", ".jpeg":
		return material.ImageFormatJPEG, nil
	default:
		return 0, fmt.Errorf("extension of %q: %w", filepath.Base(path), ErrUnsupportedImageFormat)
	}
}
