package kv

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/alwitt/goutils"
	"github.com/apex/log"
	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"
)

// FileStore is a Store persisted as a flat YAML mapping in a single file.
//
// Every write rewrites the whole file atomically, so a crash mid-write leaves the
// previous content in place.
type FileStore struct {
	goutils.Component
	mu   sync.Mutex
	path string
}

/*
NewFileStore define a new YAML file backed store

	@param path string - the file path. The file is created on first write.
	@returns store instance
*/
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("key-value file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to prepare directory for %s [%w]", path, err)
	}

	logTags := log.Fields{"package": "credvault", "module": "kv", "component": "file-store"}
	return &FileStore{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		path: path,
	}, nil
}

// load read the whole file. A missing file is an empty store.
func (s *FileStore) load() (map[string]string, error) {
	values := map[string]string{}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return values, nil
		}
		return nil, fmt.Errorf("failed to read %s [%w]", s.path, err)
	}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse %s [%w]", s.path, err)
	}
	if values == nil {
		values = map[string]string{}
	}
	return values, nil
}

// store write the whole file
func (s *FileStore) store(values map[string]string) error {
	data, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to serialize key-value content [%w]", err)
	}
	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write %s [%w]", s.path, err)
	}
	if err := os.Chmod(s.path, 0o600); err != nil {
		return fmt.Errorf("failed to restrict %s permissions [%w]", s.path, err)
	}
	return nil
}

func (s *FileStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, err := s.load()
	if err != nil {
		return "", err
	}
	val, ok := values[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return val, nil
}

func (s *FileStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, err := s.load()
	if err != nil {
		return err
	}
	values[key] = value
	if err := s.store(values); err != nil {
		return err
	}
	log.WithFields(s.GetLogTagsForContext(ctx)).WithField("key", key).Debug("Value stored")
	return nil
}

func (s *FileStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	if err := s.store(values); err != nil {
		return err
	}
	log.WithFields(s.GetLogTagsForContext(ctx)).WithField("key", key).Debug("Value removed")
	return nil
}
