package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"handmade-market/internal/logger"

	"go.uber.org/zap"
)

// SchemaVersion is written into every envelope. Values stored before
// versioning (a bare JSON document) are read as version 0.
const SchemaVersion = 1

type envelope struct {
	Version int             `json:"v"`
	Data    json.RawMessage `json:"data"`
}

// LoadJSON decodes the value under key into dst. It returns false when the
// key is absent and leaves dst untouched.
func LoadJSON(ctx context.Context, s Store, key string, dst any) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}

	payload, version, err := unwrap([]byte(raw))
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	if version > SchemaVersion {
		return false, fmt.Errorf("%s: version %d: %w", key, version, ErrUnsupportedVersion)
	}
	if version < SchemaVersion {
		logger.FromCtx(ctx).Info("migrating legacy stored value",
			zap.String("key", key),
			zap.Int("from_version", version),
			zap.Int("to_version", SchemaVersion),
		)
	}

	if err := json.Unmarshal(payload, dst); err != nil {
		return false, fmt.Errorf("%s: %w: %v", key, ErrCorruptValue, err)
	}
	return true, nil
}

// SaveJSON encodes v inside a versioned envelope and stores it under key.
func SaveJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	out, err := json.Marshal(envelope{Version: SchemaVersion, Data: data})
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, key, string(out))
}

func unwrap(raw []byte) (json.RawMessage, int, error) {
	trimmed := bytes.TrimSpace(raw)
	if !json.Valid(trimmed) {
		return nil, 0, ErrCorruptValue
	}
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed, 0, nil
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return nil, 0, ErrCorruptValue
	}
	rawVersion, hasVersion := probe["v"]
	data, hasData := probe["data"]
	if !hasVersion || !hasData || len(probe) != 2 {
		return trimmed, 0, nil
	}

	var version int
	if err := json.Unmarshal(rawVersion, &version); err != nil {
		return trimmed, 0, nil
	}
	return data, version, nil
}
