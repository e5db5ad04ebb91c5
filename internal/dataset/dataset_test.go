package dataset

import (
	"bytes"
	"encoding/binary"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/matrix"
)

func encodeIDXImages(t *testing.T, rows, cols int, images [][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	header := []uint32{idxImagesMagic, uint32(len(images)), uint32(rows), uint32(cols)}
	require.NoError(t, binary.Write(&buf, binary.BigEndian, header))
	for _, img := range images {
		buf.Write(img)
	}
	return buf.Bytes()
}

func encodeIDXLabels(t *testing.T, labels []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.BigEndian, []uint32{idxLabelsMagic, uint32(len(labels))}))
	buf.Write(labels)
	return buf.Bytes()
}

func TestReadIDX(t *testing.T) {
	images := [][]byte{{0, 255, 128, 64}, {1, 2, 3, 4}}
	got, err := ReadIDXImages(bytes.NewReader(encodeIDXImages(t, 2, 2, images)))
	require.NoError(t, err)
	assert.Equal(t, images, got)

	labels, err := ReadIDXLabels(bytes.NewReader(encodeIDXLabels(t, []byte{7, 3})))
	require.NoError(t, err)
	assert.Equal(t, []byte{7, 3}, labels)
}

func TestReadIDXBadMagic(t *testing.T) {
	_, err := ReadIDXImages(bytes.NewReader(encodeIDXLabels(t, []byte{1})))
	require.ErrorIs(t, err, ErrFormat)

	_, err = ReadIDXLabels(bytes.NewReader(encodeIDXImages(t, 1, 1, [][]byte{{1}})))
	require.ErrorIs(t, err, ErrFormat)
}

func TestReadIDXTruncated(t *testing.T) {
	data := encodeIDXImages(t, 2, 2, [][]byte{{1, 2, 3, 4}})
	_, err := ReadIDXImages(bytes.NewReader(data[:len(data)-1]))
	require.Error(t, err)
}

func TestReadIDXCorruptHeader(t *testing.T) {
	tests := []struct {
		name   string
		header []uint32
	}{
		{"overflowing size", []uint32{idxImagesMagic, 2, 65536, 65536}},
		{"oversized image", []uint32{idxImagesMagic, 1, 2048, 2048}},
		{"zero rows", []uint32{idxImagesMagic, 1, 0, 28}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, binary.Write(&buf, binary.BigEndian, tt.header))
			_, err := ReadIDXImages(&buf)
			require.ErrorIs(t, err, ErrFormat)
		})
	}
}

func TestReadIDXHugeCountWithoutData(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.BigEndian, []uint32{idxImagesMagic, 1 << 31, 28, 28}))
	_, err := ReadIDXImages(&buf)
	require.Error(t, err)

	buf.Reset()
	require.NoError(t, binary.Write(&buf, binary.BigEndian, []uint32{idxLabelsMagic, 1 << 31}))
	buf.Write([]byte{1, 2})
	_, err = ReadIDXLabels(&buf)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestLoadMNIST(t *testing.T) {
	dir := t.TempDir()
	imagesPath := filepath.Join(dir, "images.idx3-ubyte")
	labelsPath := filepath.Join(dir, "labels.idx1-ubyte")

	images := [][]byte{{0, 255}, {51, 102}, {255, 255}}
	require.NoError(t, os.WriteFile(imagesPath, encodeIDXImages(t, 1, 2, images), 0o644))
	require.NoError(t, os.WriteFile(labelsPath, encodeIDXLabels(t, []byte{4, 9, 0}), 0o644))

	ds, err := LoadMNIST(imagesPath, labelsPath, 2)
	require.NoError(t, err)
	require.Equal(t, 2, ds.Len())

	assert.InDeltaSlice(t, []float64{0, 1}, ds.Inputs[0].Flatten(), 1e-12)
	assert.InDeltaSlice(t, []float64{0.2, 0.4}, ds.Inputs[1].Flatten(), 1e-12)
	assert.Equal(t, 4, ArgMax(ds.Targets[0]))
	assert.Equal(t, 9, ArgMax(ds.Targets[1]))
	assert.True(t, ds.Targets[0].IsColumn(MNISTClasses))
}

func TestFromIDXMismatch(t *testing.T) {
	_, err := FromIDX([][]byte{{1}}, []byte{1, 2}, 0)
	require.ErrorIs(t, err, ErrFormat)

	_, err = FromIDX([][]byte{{1}}, []byte{12}, 0)
	require.ErrorIs(t, err, ErrFormat)
}

func TestLoadMNISTMissingFile(t *testing.T) {
	_, err := LoadMNIST(filepath.Join(t.TempDir(), "nope"), "nope", 0)
	require.Error(t, err)
}

func TestCSVLoader(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "test_loader.csv")
	content := "f1,f2,l1,f3,l2\n1.0,2.0,0.0,3.0,1.0\n4.0,5.0,1.0,6.0,0.0\n"
	require.NoError(t, os.WriteFile(filename, []byte(content), 0o644))

	ds, err := LoadCSV(filename, []int{4, 2}, true)
	require.NoError(t, err)
	require.Equal(t, 2, ds.Len())

	assert.Equal(t, []float64{1, 2, 3}, ds.Inputs[0].Flatten())
	assert.Equal(t, []float64{4, 5, 6}, ds.Inputs[1].Flatten())
	// Target order follows labelCols.
	assert.Equal(t, []float64{1, 0}, ds.Targets[0].Flatten())
	assert.Equal(t, []float64{0, 1}, ds.Targets[1].Flatten())
}

func TestReadCSVErrors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("a,b\n"), []int{1}, true)
	require.ErrorIs(t, err, ErrEmpty)

	_, err = ReadCSV(strings.NewReader("1,x\n"), []int{0}, false)
	require.Error(t, err)

	_, err = ReadCSV(strings.NewReader("1,2\n"), []int{5}, false)
	require.ErrorIs(t, err, ErrFormat)
}

func TestDatasetNormalization(t *testing.T) {
	ds, err := FromSlices(
		[][]float64{{10, 0, 3}, {20, 5, 3}, {30, 10, 3}},
		[][]float64{{0}, {1}, {0}},
	)
	require.NoError(t, err)

	ds.Normalize()

	expected := [][]float64{{0, 0, 0}, {0.5, 0.5, 0}, {1, 1, 0}}
	for i := range expected {
		assert.InDeltaSlice(t, expected[i], ds.Inputs[i].Flatten(), 1e-12)
	}
}

func TestFromSlicesMismatch(t *testing.T) {
	_, err := FromSlices([][]float64{{1}}, nil)
	require.ErrorIs(t, err, ErrFormat)
}

func TestSplitAndBatches(t *testing.T) {
	ds := &Dataset{}
	for i := 0; i < 10; i++ {
		ds.Append(matrix.Column(float64(i)), OneHot(i%2, 2))
	}

	train, test := ds.Split(0.8)
	assert.Equal(t, 8, train.Len())
	assert.Equal(t, 2, test.Len())

	all, none := ds.Split(1)
	assert.Equal(t, 10, all.Len())
	assert.Zero(t, none.Len())

	batches := ds.Batches(4)
	require.Len(t, batches, 3)
	assert.Equal(t, 4, batches[0].Len())
	assert.Equal(t, 2, batches[2].Len())
	assert.Equal(t, 8.0, batches[2].Inputs[0].At(0, 0))

	require.Len(t, ds.Batches(0), 1)
	assert.Empty(t, (&Dataset{}).Batches(3))
}

func TestAppendAfterSplitKeepsOtherHalf(t *testing.T) {
	ds, err := FromSlices([][]float64{{1}, {2}, {3}, {4}}, [][]float64{{1}, {2}, {3}, {4}})
	require.NoError(t, err)

	train, test := ds.Split(0.5)
	train.Append(matrix.Column(99), matrix.Column(99))
	assert.Equal(t, 3.0, test.Inputs[0].At(0, 0))
	assert.Equal(t, 3.0, test.Targets[0].At(0, 0))

	batches := ds.Batches(2)
	batches[0].Append(matrix.Column(42), matrix.Column(42))
	assert.Equal(t, 3.0, batches[1].Inputs[0].At(0, 0))
	assert.Equal(t, 3.0, ds.Inputs[2].At(0, 0))
}

func TestShuffleKeepsPairs(t *testing.T) {
	ds := &Dataset{}
	for i := 0; i < 20; i++ {
		ds.Append(matrix.Column(float64(i)), matrix.Column(float64(i)))
	}

	ds.Shuffle(rand.New(rand.NewSource(3)))

	moved := false
	for i := 0; i < ds.Len(); i++ {
		assert.Equal(t, ds.Inputs[i].At(0, 0), ds.Targets[i].At(0, 0))
		if ds.Inputs[i].At(0, 0) != float64(i) {
			moved = true
		}
	}
	assert.True(t, moved)
}

func TestOneHotAndArgMax(t *testing.T) {
	v := OneHot(3, 5)
	assert.Equal(t, []float64{0, 0, 0, 1, 0}, v.Flatten())
	assert.Equal(t, 3, ArgMax(v))
	assert.Equal(t, 1, ArgMax(matrix.Column(0.1, 0.7, 0.2)))
	assert.Equal(t, []float64{0, 0}, OneHot(7, 2).Flatten())
}

func TestSynthetic(t *testing.T) {
	ds := Synthetic(rand.New(rand.NewSource(1)), 25)
	require.Equal(t, 25, ds.Len())

	for i := 0; i < ds.Len(); i++ {
		require.True(t, ds.Inputs[i].IsColumn(784))
		require.True(t, ds.Targets[i].IsColumn(MNISTClasses))
		assert.Equal(t, i%MNISTClasses, ArgMax(ds.Targets[i]))
	}

	// The top-left pixel is lit for digit 0 and dark for digit 1.
	assert.InDelta(t, 1.0, ds.Inputs[0].At(0, 0), 0.05)
	assert.InDelta(t, 0.0, ds.Inputs[1].At(0, 0), 0.05)
}
