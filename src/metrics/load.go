package metrics

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/iafilius/CanDashboard/src/logging"
)

// MaxLineBytes caps a single JSONL record.
const MaxLineBytes = 16 * 1024 * 1024

// LoadFile reads data points from a JSON array or JSONL file and keeps the
// most recent max records (max <= 0 keeps everything).
func LoadFile(path string, max int) ([]DataPoint, error) {
	defer logging.TimeTrack(time.Now(), "load "+path)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()
	points, err := Decode(f, max)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logging.WithField("file", path).Debugf("[metrics] loaded %d records", len(points))
	return points, nil
}

// Decode reads either a JSON array of records or one record per line.
func Decode(r io.Reader, max int) ([]DataPoint, error) {
	reader := bufio.NewReader(r)
	first, err := peekNonSpace(reader)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	if first == '[' {
		var points []DataPoint
		if err := json.NewDecoder(reader).Decode(&points); err != nil {
			return nil, fmt.Errorf("decode json array: %w", err)
		}
		return tail(points, max), nil
	}
	return decodeLines(reader, max)
}

func peekNonSpace(reader *bufio.Reader) (byte, error) {
	for {
		b, err := reader.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b, reader.UnreadByte()
	}
}

func decodeLines(reader *bufio.Reader, max int) ([]DataPoint, error) {
	var points []DataPoint
	lineNo := 0
	for {
		line, rerr := reader.ReadBytes('\n')
		if len(line) > MaxLineBytes {
			return nil, fmt.Errorf("line %d too large: exceeds %d bytes", lineNo+1, MaxLineBytes)
		}
		if rerr != nil && !errors.Is(rerr, io.EOF) {
			return nil, fmt.Errorf("read line %d: %w", lineNo+1, rerr)
		}
		if rerr != nil && len(line) == 0 {
			break
		}
		lineNo++
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		var p DataPoint
		if err := json.Unmarshal(line, &p); err != nil {
			logging.Debugf("[metrics] skipping line %d: %v", lineNo, err)
			continue
		}
		points = append(points, p)
		// trim in batches so long files stay bounded without per-line copying
		if max > 0 && len(points) >= 2*max {
			points = append(points[:0:0], points[len(points)-max:]...)
		}
	}
	return tail(points, max), nil
}

func tail(points []DataPoint, max int) []DataPoint {
	if max <= 0 || len(points) <= max {
		return points
	}
	return points[len(points)-max:]
}
