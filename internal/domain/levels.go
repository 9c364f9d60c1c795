package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Levels maps a complexity tier to its content.
type Levels map[ComplexityLevel]LeveledContent

// DuplicateLevelError is returned when a serialized levels object repeats a key.
type DuplicateLevelError struct {
	Level ComplexityLevel
}

func (e *DuplicateLevelError) Error() string {
	return fmt.Sprintf("duplicate level %d", e.Level)
}

// Keys returns the level keys in ascending order.
func (l Levels) Keys() []ComplexityLevel {
	keys := make([]ComplexityLevel, 0, len(l))
	for k := range l {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// UnmarshalJSON decodes a levels object, rejecting repeated keys that
// encoding/json would otherwise collapse silently. Unknown fields inside a
// level are rejected.
func (l *Levels) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*l = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("levels: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("levels: expected object, got %v", tok)
	}

	out := make(Levels)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("levels: %w", err)
		}
		key, _ := tok.(string)
		n, err := strconv.Atoi(key)
		if err != nil {
			return fmt.Errorf("levels: invalid level key %q", key)
		}
		level := ComplexityLevel(n)
		if _, dup := out[level]; dup {
			return &DuplicateLevelError{Level: level}
		}

		var content LeveledContent
		if err := dec.Decode(&content); err != nil {
			return fmt.Errorf("levels[%d]: %w", n, err)
		}
		out[level] = content
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("levels: %w", err)
	}

	*l = out
	return nil
}
