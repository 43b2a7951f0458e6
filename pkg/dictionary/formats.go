package dictionary

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// FileFormat identifies how a word list is stored on disk.
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatText               // One word per line
	FormatChunk              // Single dict_NNNN.bin file
	FormatChunkDir           // Directory of dict_NNNN.bin files
)

// maxChunkWords is a sanity bound for a chunk header.
const maxChunkWords = 1000000

// String returns the config name of the format.
func (f FileFormat) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatChunk:
		return "chunk"
	case FormatChunkDir:
		return "chunks"
	default:
		return "unknown"
	}
}

// ParseFormat maps a config value onto a FileFormat.
// "auto" and "" map to FormatUnknown, which makes Open detect the format.
func ParseFormat(name string) (FileFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return FormatUnknown, nil
	case "text", "txt":
		return FormatText, nil
	case "chunk", "bin":
		return FormatChunk, nil
	case "chunks", "dir":
		return FormatChunkDir, nil
	}
	return FormatUnknown, fmt.Errorf("unknown dictionary format %q", name)
}

// DetectFormat inspects path and reports which loader can read it.
func DetectFormat(path string) (FileFormat, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FormatUnknown, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if info.IsDir() {
		matches, err := filepath.Glob(filepath.Join(path, chunkPattern))
		if err != nil {
			return FormatUnknown, fmt.Errorf("failed to scan for chunk files: %w", err)
		}
		if len(matches) == 0 {
			return FormatUnknown, fmt.Errorf("no chunk files found in %s", path)
		}
		return FormatChunkDir, nil
	}

	if strings.ToLower(filepath.Ext(path)) == ".bin" {
		if err := validateChunkFile(path); err != nil {
			return FormatUnknown, err
		}
		return FormatChunk, nil
	}

	if info.Size() == 0 {
		return FormatUnknown, fmt.Errorf("dictionary file %s is empty", path)
	}
	return FormatText, nil
}

// validateChunkFile checks that a chunk header is readable and plausible.
func validateChunkFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	var wordCount int32
	if err := binary.Read(file, binary.LittleEndian, &wordCount); err != nil {
		return fmt.Errorf("failed to read header from %s: %w", filename, err)
	}
	if wordCount < 0 {
		return fmt.Errorf("invalid word count in %s: %d (negative)", filename, wordCount)
	}
	if wordCount > maxChunkWords {
		return fmt.Errorf("suspicious word count in %s: %d (too large)", filename, wordCount)
	}

	log.Debugf("Chunk file %s validated: %d words", filename, wordCount)
	return nil
}
