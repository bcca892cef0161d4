package catalogfs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/eshaffer321/ateema-proposal-engine/internal/domain/catalog"
)

// decodeTable reads a JSON object of label -> price, keeping key order.
// ok is false when raw is not an object. Entries whose value is not a
// number (or a numeric string) are skipped.
func decodeTable(raw json.RawMessage) (table catalog.PriceTable, ok bool, err error) {
	if !isObject(raw) {
		return nil, false, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))

	if _, err := dec.Token(); err != nil {
		return nil, true, err
	}
	table = catalog.PriceTable{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, true, err
		}
		key, _ := keyTok.(string)

		var val json.RawMessage
		if err := dec.Decode(&val); err != nil {
			return nil, true, fmt.Errorf("price %q: %w", key, err)
		}
		price, ok := number(val)
		if !ok {
			continue
		}
		table = append(table, catalog.PricePoint{Label: key, Price: price})
	}
	if _, err := dec.Token(); err != nil {
		return nil, true, err
	}
	return table, true, nil
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func isNumber(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return false
	}
	c := trimmed[0]
	return c == '-' || (c >= '0' && c <= '9')
}

// number parses a JSON number or a string holding one.
func number(raw json.RawMessage) (float64, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return 0, false
	}
	var s string
	if trimmed[0] == '"' {
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return 0, false
		}
	} else {
		s = string(trimmed)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// text returns a JSON string unquoted, null as empty, and anything else as
// compact JSON.
func text(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return ""
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return string(trimmed)
	}
	return buf.String()
}
