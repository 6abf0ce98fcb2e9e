package book

import (
	"github.com/sirupsen/logrus"

	"github.com/unalkalkan/ChapterMark/internal/storage"
	"github.com/unalkalkan/ChapterMark/pkg/types"
)

// NewRepository creates the repository selected by the storage configuration.
// "sqlite" opens the embedded database; object store adapters hold JSON documents.
func NewRepository(cfg types.StorageConfig, log logrus.FieldLogger) (Repository, error) {
	if storage.NormalizeAdapter(cfg.Adapter) == storage.AdapterSQLite {
		return NewSQLRepository(cfg.SQLite.Path, log)
	}

	adapter, err := storage.NewAdapter(cfg, log)
	if err != nil {
		return nil, err
	}
	return NewStorageRepository(adapter), nil
}
