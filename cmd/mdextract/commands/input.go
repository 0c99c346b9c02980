package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
)

// stdinSource names standard input on the command line and in reports.
const stdinSource = "-"

// parseSize turns a human size such as "5MB" into bytes. "0" and "" mean
// unlimited.
func parseSize(s string) (int64, error) {
	if s == "" || s == "0" {
		return 0, nil
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	return int64(n), nil
}

// readInput reads a file, or stdin for "-", refusing inputs above limit
// bytes when limit is positive.
func readInput(source string, stdin io.Reader, limit int64) (string, error) {
	var r io.Reader
	if source == stdinSource {
		r = stdin
	} else {
		f, err := os.Open(source)
		if err != nil {
			return "", fmt.Errorf("opening %s: %w", source, err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", source, err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return "", fmt.Errorf("%s exceeds max input size of %s", source, humanize.Bytes(uint64(limit)))
	}
	return string(data), nil
}
