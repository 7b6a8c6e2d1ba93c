// Package preprocess reads a raw statement export and repairs records that
// were broken across multiple physical lines before any CSV parsing happens.
// Some bank exports wrap a long description onto a following line with no
// delimiters; those fragments are merged back into the row they belong to.
package preprocess

import (
	"fmt"
	"strings"

	"csv2ofx/internal/fileutils"
	"csv2ofx/internal/logging"
)

// Delimiter is the single fixed field separator of the supported exports.
const Delimiter = ';'

// minDelimiters is the broken-line heuristic: a well-formed row has at least
// three fields, so fewer than two delimiters marks a continuation fragment.
// A legitimately short but valid row would be mis-merged; this is a known
// limitation of the heuristic, kept as-is.
const minDelimiters = 2

// Repair splits raw statement content into the header line and the repaired
// data lines. A broken line's content (its first field) is appended with a
// single space to the second-to-last field of the previous accepted line,
// conventionally the description. Blank lines are dropped. Returns empty
// results when there is no content.
func Repair(content string) (header string, lines []string) {
	// Strip the BOM some Windows editors prepend
	content = strings.TrimPrefix(content, "\uFEFF")

	rawLines := strings.Split(content, "\n")
	if len(rawLines) == 0 || strings.TrimSpace(rawLines[0]) == "" {
		return "", nil
	}

	header = strings.TrimSpace(rawLines[0])

	for _, raw := range rawLines[1:] {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if strings.Count(line, string(Delimiter)) < minDelimiters {
			if len(lines) == 0 {
				continue
			}
			fragment := strings.SplitN(line, string(Delimiter), 2)[0]
			parts := strings.Split(lines[len(lines)-1], string(Delimiter))
			parts[len(parts)-2] = parts[len(parts)-2] + " " + fragment
			lines[len(lines)-1] = strings.Join(parts, string(Delimiter))
			continue
		}

		lines = append(lines, line)
	}

	return header, lines
}

// RepairFile reads a statement file and applies Repair. An empty file yields
// empty results, not an error; the caller decides how to report that.
func RepairFile(path string, logger logging.Logger) (string, []string, error) {
	data, err := fileutils.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("error reading statement file: %w", err)
	}

	header, lines := Repair(string(data))
	if header == "" {
		logger.WithField("file", path).Warn("Statement file is empty")
		return "", nil, nil
	}

	logger.WithFields(
		logging.Field{Key: "file", Value: path},
		logging.Field{Key: "rows", Value: len(lines)},
	).Debug("Repaired statement lines")

	return header, lines, nil
}
