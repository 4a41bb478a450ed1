package storage

import (
	"io"
	"time"

	"github.com/haierkeys/clipboard-history-service/pkg/code"
	"github.com/haierkeys/clipboard-history-service/pkg/storage/local_fs"
)

type Type = string

const LOCAL Type = "localfs"

var StorageTypeMap = map[Type]bool{
	LOCAL: true,
}

// Config Unified storage configuration
type Config struct {
	Type Type `yaml:"type"`

	IsEnabled bool `yaml:"is-enable"`

	// Local FS
	SavePath string `yaml:"save-path"`
}

type Storager interface {
	SendFile(pathKey string, file io.Reader, cType string, modTime time.Time) (string, error)
	SendContent(pathKey string, content []byte, modTime time.Time) (string, error)
	Delete(pathKey string) error
}

func NewClient(config *Config) (Storager, error) {
	if config == nil {
		return nil, code.ErrorInvalidStorageType
	}

	if config.Type == LOCAL {
		cfg := &local_fs.Config{
			IsEnabled: config.IsEnabled,
			SavePath:  config.SavePath,
		}
		return local_fs.NewClient(cfg)
	}
	return nil, code.ErrorInvalidStorageType
}
