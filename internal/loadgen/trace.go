package loadgen

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/mackushev/bustub/replacer"
)

// Event is one simulated buffer-pool access: touch frame ID with the
// given access type.
type Event struct {
	FrameID replacer.FrameID
	Kind    replacer.AccessType
}

// ReadTrace parses a CSV trace file of "frame_id,access_type" lines
// from fs, skipping blank lines. access_type is one of
// unknown|lookup|scan|index (case-insensitive); an absent or unknown
// token defaults to unknown, matching the replacer's own advisory
// treatment of AccessType.
//
// Reading through an afero.Fs rather than os directly lets tests
// inject an in-memory filesystem instead of writing real trace files
// to disk.
func ReadTrace(fs afero.Fs, path string) ([]Event, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trace file: %w", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, ",")
		frameID, err := strconv.ParseUint(strings.TrimSpace(fields[0]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid frame id %q: %w", lineNo, fields[0], err)
		}

		kind := replacer.AccessUnknown
		if len(fields) > 1 {
			kind = parseAccessType(strings.TrimSpace(fields[1]))
		}

		events = append(events, Event{FrameID: replacer.FrameID(frameID), Kind: kind})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan trace file: %w", err)
	}

	return events, nil
}

func parseAccessType(s string) replacer.AccessType {
	switch strings.ToLower(s) {
	case "lookup":
		return replacer.AccessLookup
	case "scan":
		return replacer.AccessScan
	case "index":
		return replacer.AccessIndex
	default:
		return replacer.AccessUnknown
	}
}
