package dictionary

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadText(t *testing.T) {
	input := "# header\ncool\n\n  jade  \nbed\t42\textra\n#skip\n"

	words, err := ReadText(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"cool", "jade", "bed"}, words)
}

func TestOpenTextFile(t *testing.T) {
	idx, err := Open(filepath.Join("testdata", "words.txt"), FormatUnknown)
	require.NoError(t, err)

	assert.Equal(t, 9, idx.Len())
	assert.True(t, idx.Contains("BED"))
	assert.True(t, idx.Contains("ANN"))
	assert.False(t, idx.Contains("AT"))
}

func TestOpenWithoutPath(t *testing.T) {
	idx, err := Open("", FormatUnknown)
	require.NoError(t, err)
	assert.Equal(t, 0, idx.Len())
}

func TestOpenMissingPath(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.txt"), FormatUnknown)
	assert.Error(t, err)
}

func TestChunkRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteChunk(&buf, sampleWords))

	var count int32
	require.NoError(t, binary.Read(bytes.NewReader(buf.Bytes()), binary.LittleEndian, &count))
	assert.Equal(t, int32(len(sampleWords)), count)

	words, err := ReadChunk(&buf)
	require.NoError(t, err)
	assert.Equal(t, sampleWords, words)
}

func TestReadChunkTruncated(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteChunk(&buf, []string{"cool", "jade"}))
	data := buf.Bytes()

	_, err := ReadChunk(bytes.NewReader(data[:len(data)-3]))
	assert.Error(t, err)
}

func TestReadChunkBadHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, int32(-4)))

	_, err := ReadChunk(&buf)
	assert.Error(t, err)
}

func TestChunkDir(t *testing.T) {
	dir := t.TempDir()

	chunks, err := WriteChunkDir(dir, sampleWords, 4)
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	assert.Equal(t, 4, chunks[0].WordCount)
	assert.Equal(t, 1, chunks[2].WordCount)
	assert.Equal(t, "dict_0002.bin", filepath.Base(chunks[1].Filename))

	found, err := AvailableChunks(dir)
	require.NoError(t, err)
	require.Len(t, found, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{found[0].ChunkID, found[1].ChunkID, found[2].ChunkID})
	assert.Equal(t, 4, found[1].WordCount)

	format, err := DetectFormat(dir)
	require.NoError(t, err)
	assert.Equal(t, FormatChunkDir, format)

	idx, err := Open(dir, FormatUnknown)
	require.NoError(t, err)
	assert.Equal(t, len(sampleWords), idx.Len())
	assert.True(t, idx.Contains("AMOK"))
}

func TestDetectFormat(t *testing.T) {
	dir := t.TempDir()

	textPath := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(textPath, []byte("cool\n"), 0644))

	emptyPath := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(emptyPath, nil, 0644))

	var buf bytes.Buffer
	require.NoError(t, WriteChunk(&buf, []string{"cool"}))
	chunkPath := filepath.Join(dir, "dict_0001.bin")
	require.NoError(t, os.WriteFile(chunkPath, buf.Bytes(), 0644))

	emptyDir := filepath.Join(dir, "empty")
	require.NoError(t, os.Mkdir(emptyDir, 0755))

	tests := []struct {
		description string
		path        string
		expected    FileFormat
		wantErr     bool
	}{
		{"text file", textPath, FormatText, false},
		{"single chunk", chunkPath, FormatChunk, false},
		{"chunk directory", dir, FormatChunkDir, false},
		{"empty text file", emptyPath, FormatUnknown, true},
		{"directory without chunks", emptyDir, FormatUnknown, true},
		{"missing path", filepath.Join(dir, "missing"), FormatUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			format, err := DetectFormat(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, format)
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected FileFormat
		wantErr  bool
	}{
		{"auto", FormatUnknown, false},
		{"", FormatUnknown, false},
		{"TEXT", FormatText, false},
		{"chunk", FormatChunk, false},
		{"chunks", FormatChunkDir, false},
		{"yaml", FormatUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			format, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, format)
		})
	}
}
