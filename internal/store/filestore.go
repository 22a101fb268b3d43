package store

import (
	"blockd/internal/providers"
	"blockd/internal/structures"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileStore keeps each key in its own file under the configured directory,
// written with the temp-file-and-rename protocol so readers in other
// processes never observe a half-written blob.
type FileStore struct {
	mu         sync.RWMutex
	dir        string
	compress   bool
	compressor CompressorInterface
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
}

func NewFileStore(conf *structures.Config, compressor CompressorInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) (StoreInterface, error) {
	if err := os.MkdirAll(conf.Store.Dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{
		dir:        conf.Store.Dir,
		compress:   conf.Store.Compress,
		compressor: compressor,
		logger:     logger,
		metrics:    metrics,
	}, nil
}

func (fs *FileStore) path(key string) string {
	return filepath.Join(fs.dir, key+".blob")
}

func (fs *FileStore) Get(key string) ([]byte, bool, error) {
	start := time.Now()
	defer func() { fs.metrics.ObserveStoreDuration("get", time.Since(start)) }()

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	data, err := os.ReadFile(fs.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if fs.compress {
		data, err = fs.compressor.Decompress(data)
		if err != nil {
			return nil, false, err
		}
	}
	return data, true, nil
}

func (fs *FileStore) Set(key string, value []byte) error {
	start := time.Now()
	defer func() { fs.metrics.ObserveStoreDuration("set", time.Since(start)) }()

	fs.mu.Lock()
	defer fs.mu.Unlock()

	data := value
	if fs.compress {
		var err error
		data, err = fs.compressor.Compress(value)
		if err != nil {
			return err
		}
	}

	fileName := fs.path(key)
	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

func (fs *FileStore) Remove(key string) error {
	start := time.Now()
	defer func() { fs.metrics.ObserveStoreDuration("remove", time.Since(start)) }()

	fs.mu.Lock()
	defer fs.mu.Unlock()

	err := os.Remove(fs.path(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
