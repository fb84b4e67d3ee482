//go:build !windows

package debug

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// readRSS returns resident pages from /proc/self/statm times the page size.
// Systems without procfs report an error.
func readRSS() (uint64, error) {
	raw, err := os.ReadFile("/proc/self/statm")
	if err != nil {
		return 0, err
	}
	fields := strings.Fields(string(raw))
	if len(fields) < 2 {
		return 0, fmt.Errorf("statm: unexpected content %q", raw)
	}
	pages, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("statm: %w", err)
	}
	return pages * uint64(os.Getpagesize()), nil
}
