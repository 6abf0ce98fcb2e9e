package types

// Config represents the overall application configuration
type Config struct {
	Storage  StorageConfig  `yaml:"storage" json:"storage" envPrefix:"STORAGE_"`
	Shelf    ShelfConfig    `yaml:"shelf" json:"shelf" envPrefix:"SHELF_"`
	Splitter SplitterConfig `yaml:"splitter" json:"splitter" envPrefix:"SPLITTER_"`
	Log      LogConfig      `yaml:"log" json:"log" envPrefix:"LOG_"`
}

// StorageConfig defines where book state is persisted
type StorageConfig struct {
	Adapter string            `yaml:"adapter" json:"adapter" env:"ADAPTER"` // "local", "s3" or "sqlite"
	Local   LocalStorageOpts  `yaml:"local" json:"local" envPrefix:"LOCAL_"`
	S3      S3StorageOpts     `yaml:"s3" json:"s3" envPrefix:"S3_"`
	SQLite  SQLiteStorageOpts `yaml:"sqlite" json:"sqlite" envPrefix:"SQLITE_"`
}

// LocalStorageOpts configures the local filesystem adapter
type LocalStorageOpts struct {
	BasePath string `yaml:"base_path" json:"base_path" env:"BASE_PATH"`
}

// S3StorageOpts configures the S3-compatible adapter
type S3StorageOpts struct {
	Endpoint        string `yaml:"endpoint" json:"endpoint" env:"ENDPOINT"`
	Region          string `yaml:"region" json:"region" env:"REGION"`
	Bucket          string `yaml:"bucket" json:"bucket" env:"BUCKET"`
	AccessKeyID     string `yaml:"access_key_id" json:"access_key_id" env:"ACCESS_KEY_ID"`
	SecretAccessKey string `yaml:"secret_access_key" json:"secret_access_key" env:"SECRET_ACCESS_KEY"`
}

// SQLiteStorageOpts configures the embedded database backend
type SQLiteStorageOpts struct {
	Path string `yaml:"path" json:"path" env:"PATH"`
}

// ShelfConfig locates the selection store naming the active book
type ShelfConfig struct {
	SelectionPath string `yaml:"selection_path" json:"selection_path" env:"SELECTION_PATH"`
	SelectionKey  string `yaml:"selection_key" json:"selection_key" env:"SELECTION_KEY"`
}

// SplitterConfig holds the default heading pattern and source encoding
type SplitterConfig struct {
	Pattern  string `yaml:"pattern" json:"pattern" env:"PATTERN"`    // Named pattern
	Expr     string `yaml:"expr" json:"expr" env:"EXPR"`             // Custom regular expression, wins over Pattern
	Encoding string `yaml:"encoding" json:"encoding" env:"ENCODING"` // "auto" or an encoding name
}

// LogConfig configures the application logger
type LogConfig struct {
	Level      string `yaml:"level" json:"level" env:"LEVEL"`
	Format     string `yaml:"format" json:"format" env:"FORMAT"` // "text" or "json"
	File       string `yaml:"file" json:"file" env:"FILE"`       // Empty means stderr
	MaxSizeMB  int    `yaml:"max_size_mb" json:"max_size_mb" env:"MAX_SIZE_MB"`
	MaxBackups int    `yaml:"max_backups" json:"max_backups" env:"MAX_BACKUPS"`
	MaxAgeDays int    `yaml:"max_age_days" json:"max_age_days" env:"MAX_AGE_DAYS"`
}
