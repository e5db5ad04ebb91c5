package dataset

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/matrix"
)

const (
	idxImagesMagic = 2051
	idxLabelsMagic = 2049

	// MNISTClasses is the number of digit classes.
	MNISTClasses = 10
)

// maxIDXImageSize bounds rows*cols so a corrupt header cannot request
// arbitrarily large images.
const maxIDXImageSize = 1 << 20

// readIDXMagic reads the leading magic number and checks it before anything
// else in the header is trusted.
func readIDXMagic(r io.Reader, want uint32) error {
	var magic uint32
	if err := binary.Read(r, binary.BigEndian, &magic); err != nil {
		return errors.Wrap(err, "reading IDX magic number")
	}
	if magic != want {
		return errors.Wrapf(ErrFormat, "invalid magic number: got %d, want %d", magic, want)
	}
	return nil
}

// ReadIDXImages reads an IDX image file.
//
// IDX file format for images:
//
//	magic number: 0x00000803 (2051)
//	number of images: 4 bytes
//	number of rows: 4 bytes
//	number of cols: 4 bytes
//	pixel data: unsigned bytes (0-255)
func ReadIDXImages(r io.Reader) ([][]byte, error) {
	if err := readIDXMagic(r, idxImagesMagic); err != nil {
		return nil, err
	}
	var header [3]uint32
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return nil, errors.Wrap(err, "reading IDX image header")
	}

	numImages := uint64(header[0])
	imageSize := uint64(header[1]) * uint64(header[2])
	if imageSize == 0 || imageSize > maxIDXImageSize {
		return nil, errors.Wrapf(ErrFormat, "image size %dx%d out of range", header[1], header[2])
	}

	// Images are appended as they are read; the count in the header is not
	// trusted for allocation.
	var images [][]byte
	for i := uint64(0); i < numImages; i++ {
		img := make([]byte, imageSize)
		if _, err := io.ReadFull(r, img); err != nil {
			return nil, errors.Wrapf(err, "reading image %d", i)
		}
		images = append(images, img)
	}
	return images, nil
}

// ReadIDXLabels reads an IDX label file.
//
// IDX file format for labels:
//
//	magic number: 0x00000801 (2049)
//	number of labels: 4 bytes
//	label data: unsigned bytes
func ReadIDXLabels(r io.Reader) ([]byte, error) {
	if err := readIDXMagic(r, idxLabelsMagic); err != nil {
		return nil, err
	}
	var numLabels uint32
	if err := binary.Read(r, binary.BigEndian, &numLabels); err != nil {
		return nil, errors.Wrap(err, "reading IDX label header")
	}

	var buf bytes.Buffer
	n, err := io.CopyN(&buf, r, int64(numLabels))
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, errors.Wrapf(err, "reading labels: got %d of %d", n, numLabels)
	}
	return buf.Bytes(), nil
}

// FromIDX pairs decoded images and labels into samples. Pixels are scaled to
// [0, 1] and labels become one-hot vectors. maxSamples <= 0 keeps everything.
func FromIDX(images [][]byte, labels []byte, maxSamples int) (*Dataset, error) {
	if len(images) != len(labels) {
		return nil, errors.Wrapf(ErrFormat, "%d images but %d labels", len(images), len(labels))
	}

	n := len(images)
	if maxSamples > 0 && maxSamples < n {
		n = maxSamples
	}

	d := &Dataset{
		Inputs:  make([]*matrix.Matrix, n),
		Targets: make([]*matrix.Matrix, n),
	}
	for i := 0; i < n; i++ {
		if int(labels[i]) >= MNISTClasses {
			return nil, errors.Wrapf(ErrFormat, "label %d at sample %d out of range", labels[i], i)
		}
		pixels := make([]float64, len(images[i]))
		for p, b := range images[i] {
			pixels[p] = float64(b) / 255
		}
		d.Inputs[i] = matrix.Column(pixels...)
		d.Targets[i] = OneHot(int(labels[i]), MNISTClasses)
	}
	return d, nil
}

// LoadMNIST reads an IDX image file and its label file from disk.
func LoadMNIST(imagesPath, labelsPath string, maxSamples int) (*Dataset, error) {
	imgFile, err := os.Open(imagesPath)
	if err != nil {
		return nil, errors.Wrap(err, "opening images")
	}
	defer imgFile.Close()

	images, err := ReadIDXImages(imgFile)
	if err != nil {
		return nil, errors.Wrap(err, imagesPath)
	}

	lblFile, err := os.Open(labelsPath)
	if err != nil {
		return nil, errors.Wrap(err, "opening labels")
	}
	defer lblFile.Close()

	labels, err := ReadIDXLabels(lblFile)
	if err != nil {
		return nil, errors.Wrap(err, labelsPath)
	}

	return FromIDX(images, labels, maxSamples)
}
