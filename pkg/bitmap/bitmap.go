// Package bitmap holds the packed 32-bit render target and writes it as an
// uncompressed Windows BMP file.
package bitmap

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

const (
	fileHeaderSize = 14
	infoHeaderSize = 40

	// HeaderSize is the total size of the file and info headers
	HeaderSize = fileHeaderSize + infoHeaderSize

	signature     = 0x4D42 // "BM"
	bitsPerPixel  = 32
	bytesPerPixel = bitsPerPixel / 8
)

var (
	// ErrInvalidDimensions is returned for non-positive image sizes
	ErrInvalidDimensions = errors.New("image dimensions must be positive")

	// ErrImageTooLarge is returned when the pixel data cannot be addressed by the BMP size fields
	ErrImageTooLarge = errors.New("image too large")
)

// Image is a row-major buffer of packed 0xAARRGGBB pixels, top row first
type Image struct {
	Width  int
	Height int
	Pixels []uint32
}

// NewImage allocates a width x height image
func NewImage(width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if int64(width)*int64(height)*bytesPerPixel > math.MaxUint32-HeaderSize ||
		int64(width) > math.MaxInt32 || int64(height) > math.MaxInt32 {
		return nil, fmt.Errorf("%w: %dx%d", ErrImageTooLarge, width, height)
	}

	return &Image{
		Width:  width,
		Height: height,
		Pixels: make([]uint32, width*height),
	}, nil
}

// PixelSize returns the size in bytes of the pixel data
func (img *Image) PixelSize() uint32 {
	return uint32(img.Width * img.Height * bytesPerPixel)
}

// Set stores a packed pixel at (x, y), with y=0 the top row
func (img *Image) Set(x, y int, pixel uint32) {
	img.Pixels[y*img.Width+x] = pixel
}

// At returns the packed pixel at (x, y)
func (img *Image) At(x, y int) uint32 {
	return img.Pixels[y*img.Width+x]
}

// Row returns the pixels of row y. The slice aliases the image buffer.
func (img *Image) Row(y int) []uint32 {
	return img.Pixels[y*img.Width : (y+1)*img.Width]
}

// header mirrors the packed on-disk BITMAPFILEHEADER + BITMAPINFOHEADER layout
type header struct {
	FileType        uint16
	FileSize        uint32
	Reserved1       uint16
	Reserved2       uint16
	BitmapOffset    uint32
	Size            uint32
	Width           int32
	Height          int32
	Planes          uint16
	BitsPerPixel    uint16
	Compression     uint32
	SizeOfBitmap    uint32
	HorzResolution  int32
	VertResolution  int32
	ColorsUsed      uint32
	ColorsImportant uint32
}

func (img *Image) header() header {
	pixelSize := img.PixelSize()

	// Negative height marks top-down row order, matching the buffer layout
	height := -int32(img.Height)

	return header{
		FileType:     signature,
		FileSize:     HeaderSize + pixelSize,
		BitmapOffset: HeaderSize,
		Size:         infoHeaderSize,
		Width:        int32(img.Width),
		Height:       height,
		Planes:       1,
		BitsPerPixel: bitsPerPixel,
		Compression:  0,
		SizeOfBitmap: pixelSize,
	}
}

// Encode writes the image as a 32-bit uncompressed BMP
func (img *Image) Encode(w io.Writer) error {
	if len(img.Pixels) != img.Width*img.Height {
		return fmt.Errorf("encode bitmap: pixel buffer has %d entries, want %d", len(img.Pixels), img.Width*img.Height)
	}

	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, img.header()); err != nil {
		return fmt.Errorf("encode bitmap header: %w", err)
	}

	// Little-endian 0xAARRGGBB lands on disk as B, G, R, A
	if err := binary.Write(bw, binary.LittleEndian, img.Pixels); err != nil {
		return fmt.Errorf("encode bitmap pixels: %w", err)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("encode bitmap: %w", err)
	}
	return nil
}

// WriteFile encodes the image to the file at path, replacing any existing file
func (img *Image) WriteFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to write output file %s: %w", path, err)
	}

	if err := img.Encode(file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close output file %s: %w", path, err)
	}
	return nil
}
