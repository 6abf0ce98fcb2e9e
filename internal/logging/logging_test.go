package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unalkalkan/ChapterMark/pkg/types"
)

func TestNew(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		log, closer, err := New(types.LogConfig{})
		require.NoError(t, err)
		defer closer.Close()
		assert.Equal(t, logrus.InfoLevel, log.GetLevel())
		assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
		assert.Equal(t, os.Stderr, log.Out)
	})

	t.Run("JSON to rotating file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "chaptermark.log")
		log, closer, err := New(types.LogConfig{Level: "debug", Format: "json", File: path, MaxSizeMB: 1})
		require.NoError(t, err)

		log.WithField("key", "xingjie").Debug("book loaded")
		require.NoError(t, closer.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry))
		assert.Equal(t, "book loaded", entry["msg"])
		assert.Equal(t, "xingjie", entry["key"])
		assert.Equal(t, "debug", entry["level"])
	})

	t.Run("Invalid settings", func(t *testing.T) {
		_, _, err := New(types.LogConfig{Level: "loud"})
		assert.Error(t, err)

		_, _, err = New(types.LogConfig{Format: "xml"})
		assert.Error(t, err)
	})
}
