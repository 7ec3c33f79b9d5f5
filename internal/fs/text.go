package fs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

const (
	sniffSampleSize              = 4096
	nonPrintableThresholdPercent = 30

	// MaxSubjectSize caps how much of a file is loaded into the subject pane.
	MaxSubjectSize = 4 << 20
)

var (
	// ErrBinaryFile is returned when a subject file does not look like text.
	ErrBinaryFile = errors.New("file does not look like text")
	// ErrSubjectTooLarge is returned when a subject file exceeds MaxSubjectSize.
	ErrSubjectTooLarge = errors.New("file is too large")
)

type byteOrderMark int

const (
	bomNone byteOrderMark = iota
	bomUTF8
	bomUTF16LE
	bomUTF16BE
)

var binaryExtensions = map[string]struct{}{
	".7z": {}, ".bin": {}, ".bmp": {}, ".bz2": {}, ".class": {},
	".dll": {}, ".dylib": {}, ".exe": {}, ".gif": {}, ".gz": {},
	".ico": {}, ".jar": {}, ".jpeg": {}, ".jpg": {}, ".mp3": {},
	".mp4": {}, ".pdf": {}, ".png": {}, ".so": {}, ".tar": {},
	".tgz": {}, ".wasm": {}, ".xz": {}, ".zip": {},
}

// LoadSubject reads path and returns its contents as UTF-8 text suitable for
// the subject pane. Byte order marks are stripped and UTF-16 is transcoded.
func LoadSubject(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = f.Close()
	}()

	content, err := io.ReadAll(io.LimitReader(f, MaxSubjectSize+1))
	if err != nil {
		return "", err
	}
	if len(content) > MaxSubjectSize {
		return "", fmt.Errorf("%s: %w", path, ErrSubjectTooLarge)
	}
	if !IsTextFile(path, content) {
		return "", fmt.Errorf("%s: %w", path, ErrBinaryFile)
	}
	return NormalizeTextContent(content), nil
}

// IsTextFile determines if content is text or binary.
// The path (if provided) is used to short-circuit obvious binary extensions before sniffing.
func IsTextFile(path string, content []byte) bool {
	if looksBinaryByExtension(path) {
		return false
	}
	if len(content) == 0 {
		return true
	}

	sample := content
	if len(sample) > sniffSampleSize {
		sample = sample[:sniffSampleSize]
	}

	if detectBOM(sample) != bomNone {
		return true
	}
	if bytes.IndexByte(sample, 0x00) != -1 {
		return false
	}
	if utf8.Valid(sample) {
		return true
	}

	nonPrintable := 0
	for _, b := range sample {
		if !isCommonTextByte(b) {
			nonPrintable++
		}
	}
	if nonPrintable == len(sample) {
		return false
	}
	return nonPrintable*100/len(sample) < nonPrintableThresholdPercent
}

// NormalizeTextContent converts known Unicode BOM-encoded content into UTF-8 strings.
func NormalizeTextContent(content []byte) string {
	switch detectBOM(content) {
	case bomUTF8:
		return string(content[3:])
	case bomUTF16LE:
		return decodeUTF16(content, unicode.LittleEndian)
	case bomUTF16BE:
		return decodeUTF16(content, unicode.BigEndian)
	default:
		return string(content)
	}
}

func looksBinaryByExtension(path string) bool {
	if path == "" {
		return false
	}
	_, ok := binaryExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

func isCommonTextByte(b byte) bool {
	switch {
	case b == '\t' || b == '\n' || b == '\r':
		return true
	case b >= 0x20 && b <= 0x7E:
		return true
	case b == 0x1B:
		return true
	default:
		return b >= 0x80
	}
}

func detectBOM(sample []byte) byteOrderMark {
	if len(sample) >= 3 && sample[0] == 0xEF && sample[1] == 0xBB && sample[2] == 0xBF {
		return bomUTF8
	}
	if len(sample) >= 2 {
		switch {
		case sample[0] == 0xFF && sample[1] == 0xFE:
			return bomUTF16LE
		case sample[0] == 0xFE && sample[1] == 0xFF:
			return bomUTF16BE
		}
	}
	return bomNone
}

func decodeUTF16(content []byte, endian unicode.Endianness) string {
	decoder := unicode.UTF16(endian, unicode.ExpectBOM).NewDecoder()
	out, err := decoder.Bytes(content)
	if err != nil {
		return string(content)
	}
	return string(out)
}
