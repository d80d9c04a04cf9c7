// Package wordlist loads word lists from files.
package wordlist

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
)

var (
	// ErrSourceUnavailable is returned when the word list cannot be opened.
	ErrSourceUnavailable = errors.New("word list unavailable")
	// ErrRead is returned when reading fails before any line was read.
	ErrRead = errors.New("word list read failed")
	// ErrEmpty is returned by LoadWords for a list without words.
	ErrEmpty = errors.New("word list is empty")
	// ErrInvalidLength is returned for a negative target length.
	ErrInvalidLength = errors.New("word length must be >= 0")
)

// LoadWords reads one word per line from the provided file path.
func LoadWords(path string) ([]string, error) {
	file, err := open(path)
	if err != nil {
		return nil, err
	}
	defer closeQuietly(file)

	var words []string
	_, err = eachLine(file, func(raw []byte) {
		line := strings.TrimSpace(string(raw))
		if line == "" {
			return
		}
		words = append(words, line)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	if len(words) == 0 {
		return nil, ErrEmpty
	}
	return words, nil
}

// LoadByLength opens path and returns the words whose trimmed length equals
// length, in file order.
func LoadByLength(path string, length int) ([]string, error) {
	if length < 0 {
		return nil, ErrInvalidLength
	}
	file, err := open(path)
	if err != nil {
		return nil, err
	}
	defer closeQuietly(file)
	return FilterByLength(file, length)
}

// FilterByLength reads newline-delimited words from r and keeps those whose
// trimmed length, counted in runes, equals length. The kept value is the
// trimmed word, not the raw line. Lines have no length limit. Lines that are
// not valid UTF-8 are skipped. A read error after at least one line was read
// ends the scan and the words gathered so far are returned.
func FilterByLength(r io.Reader, length int) ([]string, error) {
	if length < 0 {
		return nil, ErrInvalidLength
	}
	var words []string
	lines, err := eachLine(r, func(raw []byte) {
		if !utf8.Valid(raw) {
			return
		}
		word := strings.TrimSpace(string(raw))
		if utf8.RuneCountInString(word) != length {
			return
		}
		words = append(words, word)
	})
	if err != nil {
		if lines == 0 {
			return nil, fmt.Errorf("%w: %w", ErrRead, err)
		}
		log.Warn().Err(err).Int("lines", lines).Msg("word list read stopped early")
	}
	return words, nil
}

// eachLine calls fn for every line of r without its line ending and returns
// the number of lines read.
func eachLine(r io.Reader, fn func(line []byte)) (int, error) {
	reader := bufio.NewReader(r)
	lines := 0
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return lines, err
		}
		if len(line) > 0 {
			lines++
			line = bytes.TrimSuffix(line, []byte("\n"))
			fn(bytes.TrimSuffix(line, []byte("\r")))
		}
		if err == io.EOF {
			return lines, nil
		}
	}
}

func open(path string) (*os.File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	return file, nil
}

func closeQuietly(file *os.File) {
	if err := file.Close(); err != nil {
		log.Debug().Err(err).Str("path", file.Name()).Msg("close word list")
	}
}
