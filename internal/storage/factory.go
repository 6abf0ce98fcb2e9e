package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/unalkalkan/ChapterMark/pkg/types"
)

// Adapter names accepted in storage.adapter
const (
	AdapterLocal  = "local"
	AdapterS3     = "s3"
	AdapterSQLite = "sqlite"
)

// ErrUnsupportedAdapter is returned for adapter names without an object store
var ErrUnsupportedAdapter = errors.New("unsupported storage adapter")

// NormalizeAdapter returns the canonical form of an adapter name
func NormalizeAdapter(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NewAdapter creates the object store named by cfg.Adapter.
// "sqlite" keeps books in a database rather than as objects and is rejected here.
func NewAdapter(cfg types.StorageConfig, log logrus.FieldLogger) (Adapter, error) {
	name := NormalizeAdapter(cfg.Adapter)

	var (
		adapter Adapter
		err     error
	)
	switch name {
	case AdapterLocal:
		adapter, err = NewLocalAdapter(cfg.Local.BasePath)
	case AdapterS3:
		adapter, err = NewS3Adapter(S3Options{
			Endpoint:        cfg.S3.Endpoint,
			Region:          cfg.S3.Region,
			Bucket:          cfg.S3.Bucket,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
		})
	case AdapterSQLite:
		return nil, fmt.Errorf("%w: %q stores books in a database, not as objects", ErrUnsupportedAdapter, cfg.Adapter)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAdapter, cfg.Adapter)
	}
	if err != nil {
		return nil, err
	}

	log.WithField("adapter", name).Debug("storage adapter ready")
	return adapter, nil
}
