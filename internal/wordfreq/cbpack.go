package wordfreq

import (
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// decodeCBPack reads a wordfreq cBpack payload: a header map followed by one
// array of words per frequency bin, most frequent bin first.
func decodeCBPack(name string, r io.Reader) ([][]string, error) {
	if strings.HasSuffix(strings.ToLower(name), ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer func() {
			_ = gz.Close()
		}()
		r = gz
	}

	var root []any
	if err := msgpack.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	if len(root) > 0 {
		if header, ok := root[0].(map[string]any); ok {
			if format, _ := header["format"].(string); format != "" && format != "cB" {
				return nil, fmt.Errorf("unsupported wordfreq format %q", format)
			}
			root = root[1:]
		}
	}

	bins := make([][]string, 0, len(root))
	for i, item := range root {
		raw, ok := item.([]any)
		if !ok {
			return nil, fmt.Errorf("bin %d: unexpected %T", i, item)
		}
		bin := make([]string, 0, len(raw))
		for _, w := range raw {
			word, ok := w.(string)
			if !ok {
				return nil, fmt.Errorf("bin %d: unexpected word %T", i, w)
			}
			bin = append(bin, word)
		}
		bins = append(bins, bin)
	}
	if len(bins) == 0 {
		return nil, fmt.Errorf("wordfreq data contained no entries")
	}
	return bins, nil
}
