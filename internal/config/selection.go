package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// ReadValue returns the string property key of the JSON document at path.
// A missing file, unparseable document, missing key or non-string value is logged and reported as absent.
func ReadValue(log logrus.FieldLogger, path, key string) (string, bool) {
	entry := log.WithFields(logrus.Fields{"path": path, "key": key})

	doc, err := readDocument(path)
	if err != nil {
		entry.WithError(err).Warn("selection store unreadable")
		return "", false
	}

	raw, ok := doc[key]
	if !ok {
		entry.Info("selection store has no such key")
		return "", false
	}

	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		entry.WithError(err).Warn("selection store value is not a string")
		return "", false
	}
	return value, true
}

// WriteValue sets key to value in the JSON document at path, keeping other properties.
// A missing file is created. The document is replaced atomically.
func WriteValue(log logrus.FieldLogger, path, key, value string) error {
	doc, err := readDocument(path)
	if errors.Is(err, fs.ErrNotExist) {
		doc = map[string]json.RawMessage{}
	} else if err != nil {
		return err
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value: %w", err)
	}
	doc[key] = encoded

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode selection store: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write selection store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write selection store: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace selection store: %w", err)
	}

	log.WithFields(logrus.Fields{"path": path, "key": key}).Debug("selection store updated")
	return nil
}

func readDocument(path string) (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read selection store: %w", err)
	}
	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse selection store: %w", err)
	}
	return doc, nil
}
