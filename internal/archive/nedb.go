package archive

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// corruptThreshold is the share of unreadable lines above which a data file
// is rejected instead of partially loaded.
const corruptThreshold = 0.1

const maxLineSize = 16 << 20

// ReadNeDB loads a NeDB data file. Each line is either a document, a
// {"$$deleted": true} tombstone, or an index definition. The last line for
// an _id wins. Documents come back in the order their _id first appeared,
// with {"$$date": ms} values turned into RFC 3339 strings.
func ReadNeDB(r io.Reader) ([]map[string]any, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var (
		order   []string
		docs    = make(map[string]map[string]any)
		lines   int
		corrupt int
	)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		lines++

		var doc map[string]any
		dec := json.NewDecoder(bytes.NewReader(line))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			corrupt++
			continue
		}
		if _, ok := doc["$$indexCreated"]; ok {
			continue
		}
		if _, ok := doc["$$indexRemoved"]; ok {
			continue
		}

		key, ok := doc["_id"].(string)
		if !ok || key == "" {
			corrupt++
			continue
		}
		if deleted, _ := doc["$$deleted"].(bool); deleted {
			delete(docs, key)
			continue
		}

		if _, seen := docs[key]; !seen {
			order = append(order, key)
		}
		docs[key] = convertDates(doc).(map[string]any)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}
	if lines > 0 && float64(corrupt)/float64(lines) > corruptThreshold {
		return nil, fmt.Errorf("data file is corrupt: %d of %d lines unreadable", corrupt, lines)
	}

	out := make([]map[string]any, 0, len(docs))
	placed := make(map[string]bool, len(docs))
	for _, key := range order {
		doc, ok := docs[key]
		if !ok || placed[key] {
			continue
		}
		placed[key] = true
		out = append(out, doc)
	}
	return out, nil
}

func convertDates(v any) any {
	switch t := v.(type) {
	case map[string]any:
		if len(t) == 1 {
			if ms, ok := t["$$date"]; ok {
				if s, ok := dateString(ms); ok {
					return s
				}
			}
		}
		for k, child := range t {
			t[k] = convertDates(child)
		}
		return t
	case []any:
		for i, child := range t {
			t[i] = convertDates(child)
		}
		return t
	default:
		return v
	}
}

func dateString(v any) (string, bool) {
	n, ok := v.(json.Number)
	if !ok {
		return "", false
	}
	ms, err := n.Int64()
	if err != nil {
		f, ferr := n.Float64()
		if ferr != nil {
			return "", false
		}
		ms = int64(f)
	}
	return time.UnixMilli(ms).UTC().Format(time.RFC3339Nano), true
}

// nedbDate is the NeDB encoding of a timestamp.
type nedbDate struct {
	Date int64 `json:"$$date"`
}
