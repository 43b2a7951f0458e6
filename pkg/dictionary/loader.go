package dictionary

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

const chunkPattern = "dict_*.bin"

// ChunkInfo describes one chunk file of a chunk directory.
type ChunkInfo struct {
	ChunkID   int
	Filename  string
	WordCount int
}

// Open loads the word list at path and builds an index from it.
// An empty path yields an empty index, which makes every search come back
// without candidates.
func Open(path string, format FileFormat) (*Index, error) {
	if path == "" {
		log.Warn("No dictionary configured, running with an empty index...")
		return FromSlice(nil), nil
	}

	if format == FormatUnknown {
		detected, err := DetectFormat(path)
		if err != nil {
			return nil, err
		}
		format = detected
	}

	var (
		words []string
		err   error
	)
	switch format {
	case FormatText:
		words, err = ReadTextFile(path)
	case FormatChunk:
		words, err = readChunkFile(path)
	case FormatChunkDir:
		words, err = ReadChunkDir(path)
	default:
		return nil, fmt.Errorf("unsupported dictionary format %s", format)
	}
	if err != nil {
		return nil, err
	}

	log.Debugf("Read %d words from %s (%s)", len(words), path, format)
	return FromSlice(words), nil
}

// ReadText reads a plain word list: one word per line, blank lines and
// lines starting with '#' ignored, anything after a tab dropped.
func ReadText(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if i := strings.IndexByte(line, '\t'); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if line != "" {
			words = append(words, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	return words, nil
}

// ReadTextFile reads a plain word list from disk.
func ReadTextFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list %s: %w", path, err)
	}
	defer file.Close()
	return ReadText(file)
}

// AvailableChunks scans dir for chunk files, ordered by chunk id.
func AvailableChunks(dir string) ([]ChunkInfo, error) {
	files, err := filepath.Glob(filepath.Join(dir, chunkPattern))
	if err != nil {
		return nil, fmt.Errorf("failed to scan for chunk files: %w", err)
	}

	var chunks []ChunkInfo
	for _, file := range files {
		idStr := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(file), "dict_"), ".bin")
		chunkID, err := strconv.Atoi(idStr)
		if err != nil {
			log.Debugf("Skipping chunk file with bad id: %s", file)
			continue
		}
		wordCount, err := chunkWordCount(file)
		if err != nil {
			log.Warnf("Failed to get word count for chunk %s: %v", file, err)
		}
		chunks = append(chunks, ChunkInfo{
			ChunkID:   chunkID,
			Filename:  file,
			WordCount: wordCount,
		})
	}

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].ChunkID < chunks[j].ChunkID
	})
	return chunks, nil
}

// ReadChunkDir reads every chunk in dir in chunk id order.
func ReadChunkDir(dir string) ([]string, error) {
	chunks, err := AvailableChunks(dir)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no chunk files found in %s", dir)
	}

	var words []string
	for _, chunk := range chunks {
		chunkWords, err := readChunkFile(chunk.Filename)
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", chunk.ChunkID, err)
		}
		words = append(words, chunkWords...)
	}
	return words, nil
}

func readChunkFile(filename string) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open chunk file %s: %w", filename, err)
	}
	defer file.Close()
	return ReadChunk(bufio.NewReader(file))
}

// ReadChunk decodes one binary chunk:
// int32 word count, then per word uint16 length, the word bytes, uint16 rank.
// All integers are little endian. Ranks are read and dropped.
func ReadChunk(r io.Reader) ([]string, error) {
	var totalEntries int32
	if err := binary.Read(r, binary.LittleEndian, &totalEntries); err != nil {
		return nil, fmt.Errorf("failed to read chunk header: %w", err)
	}
	if totalEntries < 0 || totalEntries > maxChunkWords {
		return nil, fmt.Errorf("invalid chunk word count %d", totalEntries)
	}

	words := make([]string, 0, totalEntries)
	for len(words) < int(totalEntries) {
		var wordLen uint16
		if err := binary.Read(r, binary.LittleEndian, &wordLen); err != nil {
			if err == io.EOF {
				log.Warnf("Chunk ended early: %d of %d words", len(words), totalEntries)
				break
			}
			return nil, fmt.Errorf("failed to read word length: %w", err)
		}

		wordBytes := make([]byte, wordLen)
		if _, err := io.ReadFull(r, wordBytes); err != nil {
			return nil, fmt.Errorf("failed to read word: %w", err)
		}

		var rank uint16
		if err := binary.Read(r, binary.LittleEndian, &rank); err != nil {
			return nil, fmt.Errorf("failed to read rank: %w", err)
		}
		words = append(words, string(wordBytes))
	}
	return words, nil
}

// WriteChunk encodes words as one binary chunk, ranked by their position.
func WriteChunk(w io.Writer, words []string) error {
	if len(words) > maxChunkWords {
		return fmt.Errorf("too many words for one chunk: %d", len(words))
	}
	if err := binary.Write(w, binary.LittleEndian, int32(len(words))); err != nil {
		return fmt.Errorf("failed to write chunk header: %w", err)
	}
	for i, word := range words {
		if len(word) > math.MaxUint16 {
			return fmt.Errorf("word too long: %d bytes", len(word))
		}
		if err := binary.Write(w, binary.LittleEndian, uint16(len(word))); err != nil {
			return fmt.Errorf("failed to write word length: %w", err)
		}
		if _, err := io.WriteString(w, word); err != nil {
			return fmt.Errorf("failed to write word: %w", err)
		}
		rank := uint16(min(i+1, math.MaxUint16))
		if err := binary.Write(w, binary.LittleEndian, rank); err != nil {
			return fmt.Errorf("failed to write rank: %w", err)
		}
	}
	return nil
}

// WriteChunkDir splits words into chunk files of chunkSize words each,
// named dict_0001.bin, dict_0002.bin and so on.
func WriteChunkDir(dir string, words []string, chunkSize int) ([]ChunkInfo, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("invalid chunk size %d", chunkSize)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create chunk dir %s: %w", dir, err)
	}

	var chunks []ChunkInfo
	for start := 0; start < len(words); start += chunkSize {
		end := min(start+chunkSize, len(words))
		info := ChunkInfo{
			ChunkID:   len(chunks) + 1,
			WordCount: end - start,
		}
		info.Filename = filepath.Join(dir, fmt.Sprintf("dict_%04d.bin", info.ChunkID))
		if err := writeChunkFile(info.Filename, words[start:end]); err != nil {
			return chunks, err
		}
		chunks = append(chunks, info)
	}
	return chunks, nil
}

func writeChunkFile(filename string, words []string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create chunk file %s: %w", filename, err)
	}
	w := bufio.NewWriter(file)
	if err := WriteChunk(w, words); err != nil {
		file.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("failed to flush chunk file %s: %w", filename, err)
	}
	return file.Close()
}

// chunkWordCount reads the word count from a chunk file's header.
func chunkWordCount(filename string) (int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	var wordCount int32
	if err := binary.Read(file, binary.LittleEndian, &wordCount); err != nil {
		return 0, err
	}
	return int(wordCount), nil
}
