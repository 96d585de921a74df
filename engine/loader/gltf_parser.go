package loader

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
)

// gltfParserImpl is the implementation of the gltfParser interface.
type gltfParserImpl struct {
	baseDir        string
	maxBufferBytes int64

	document *gltf.Document
	buffers  [][]byte
}

// gltfParser loads a glTF or GLB asset and resolves every buffer it declares into memory.
// Buffers are owned by the parser for the duration of one load and only read afterwards.
type gltfParser interface {
	// Parse loads and parses a glTF/GLB file from the given path.
	// Relative buffer and image URIs resolve against the file's directory. Buffer URIs
	// must stay inside that directory.
	//
	// Parameters:
	//   - path: path to the glTF or GLB file
	//
	// Returns:
	//   - error: error if parsing or buffer loading fails
	Parse(path string) error

	// ParseReader parses a glTF document from a reader.
	//
	// Parameters:
	//   - r: reader containing glTF JSON or GLB data
	//   - baseDir: directory relative URIs resolve against
	//   - isGLB: true if the data is in GLB format
	//
	// Returns:
	//   - error: error if parsing or buffer loading fails
	ParseReader(r io.Reader, baseDir string, isGLB bool) error

	// Document returns the parsed document, nil before a successful parse.
	Document() *gltf.Document

	// BaseDir returns the directory relative URIs resolve against.
	BaseDir() string

	// Buffer returns the bytes of a loaded buffer.
	//
	// Parameters:
	//   - index: the buffer index
	//
	// Returns:
	//   - []byte: the buffer contents, never modified by readers
	//   - error: ErrInvalidDocument if the index is out of range
	Buffer(index int) ([]byte, error)
}

var _ gltfParser = &gltfParserImpl{}

// newGLTFParser creates a new glTF parser instance.
//
// Parameters:
//   - maxBufferBytes: the largest buffer accepted, 0 for no limit
//
// Returns:
//   - gltfParser: a new parser instance
func newGLTFParser(maxBufferBytes int64) gltfParser {
	return &gltfParserImpl{maxBufferBytes: maxBufferBytes}
}

func (p *gltfParserImpl) Document() *gltf.Document {
	return p.document
}

func (p *gltfParserImpl) BaseDir() string {
	return p.baseDir
}

func (p *gltfParserImpl) Buffer(index int) ([]byte, error) {
	if index < 0 || index >= len(p.buffers) {
		return nil, fmt.Errorf("buffer index %d out of range [0,%d): %w", index, len(p.buffers), ErrInvalidDocument)
	}
	return p.buffers[index], nil
}

func (p *gltfParserImpl) Parse(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w: %w", path, ErrIO, err)
	}
	defer f.Close()

	return p.decode(f, filepath.Dir(path), strings.EqualFold(filepath.Ext(path), ".glb"))
}

func (p *gltfParserImpl) ParseReader(r io.Reader, baseDir string, isGLB bool) error {
	return p.decode(r, baseDir, isGLB)
}

// decode runs the glTF decoder over r, reading external buffers from baseDir, then checks
// the version and every buffer it produced. Either all buffers load or none are kept.
func (p *gltfParserImpl) decode(r io.Reader, baseDir string, isGLB bool) error {
	br := bufio.NewReader(r)
	if isGLB {
		magic, err := br.Peek(4)
		if err != nil || binary.LittleEndian.Uint32(magic) != gltfGLBMagic {
			return fmt.Errorf("GLB magic %x: %w", magic, ErrMalformedDocument)
		}
	}

	root := baseDir
	if root == "" {
		root = "."
	}

	doc := new(gltf.Document)
	fsys := gltfBufferFS{root: os.DirFS(root), maxBytes: p.maxBufferBytes}
	if err := gltf.NewDecoderFS(br, fsys).Decode(doc); err != nil {
		return gltfDecodeError(err)
	}
	if !strings.HasPrefix(doc.Asset.Version, "2.") {
		return fmt.Errorf("asset version %q, want 2.x: %w", doc.Asset.Version, ErrMalformedDocument)
	}

	buffers := make([][]byte, len(doc.Buffers))
	for i, buf := range doc.Buffers {
		if buf == nil {
			return fmt.Errorf("buffer %d is null: %w", i, ErrInvalidDocument)
		}
		if buf.URI == "" {
			return fmt.Errorf("buffer %d is the GLB binary chunk: %w", i, ErrNotYetSupported)
		}
		if p.maxBufferBytes > 0 && int64(buf.ByteLength) > p.maxBufferBytes {
			return fmt.Errorf("buffer %d declares %d bytes, limit %d: %w", i, buf.ByteLength, p.maxBufferBytes, ErrBufferTooLarge)
		}
		if len(buf.Data) < buf.ByteLength {
			return fmt.Errorf("buffer %d has %d bytes, declares %d: %w", i, len(buf.Data), buf.ByteLength, ErrInvalidDocument)
		}
		buffers[i] = buf.Data
	}

	p.baseDir = baseDir
	p.document = doc
	p.buffers = buffers
	return nil
}

// gltfDecodeError sorts a decoder failure into the loader's error kinds. File system failures
// are I/O errors; limit and unsupported-URI errors raised by gltfBufferFS pass through.
func gltfDecodeError(err error) error {
	var pathErr *fs.PathError
	switch {
	case errors.Is(err, ErrBufferTooLarge), errors.Is(err, ErrNotYetSupported):
		return err
	case errors.As(err, &pathErr):
		return fmt.Errorf("%w: %w", ErrIO, err)
	default:
		return fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}
}

// gltfBufferFS is the file system external buffers are read from. It refuses files over the
// size limit before they are read, and data URIs the decoder does not embed itself.
type gltfBufferFS struct {
	root     fs.FS
	maxBytes int64
}

func (f gltfBufferFS) Open(name string) (fs.File, error) {
	if strings.HasPrefix(name, "data:") {
		mediaType, _, _ := strings.Cut(name, ",")
		return nil, fmt.Errorf("buffer %s: %w", mediaType, ErrNotYetSupported)
	}

	file, err := f.root.Open(name)
	if err != nil {
		return nil, err
	}
	if f.maxBytes <= 0 {
		return file, nil
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.Size() > f.maxBytes {
		file.Close()
		return nil, fmt.Errorf("%s is %d bytes, limit %d: %w", name, info.Size(), f.maxBytes, ErrBufferTooLarge)
	}
	return file, nil
}
