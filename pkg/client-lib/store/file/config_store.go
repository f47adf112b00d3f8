package filestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/cennznet/generic-asset-go/pkg/client-lib/types"
	"github.com/spf13/viper"
)

const filename = "config.json"

type store struct {
	filePath string
	lock     *sync.RWMutex
}

// NewConfigStore returns a store persisting the config as json in
// <baseDir>/config.json.
func NewConfigStore(baseDir string) (types.ConfigStore, error) {
	if len(baseDir) <= 0 {
		return nil, fmt.Errorf("missing base directory")
	}
	if err := os.MkdirAll(baseDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &store{
		filePath: filepath.Join(baseDir, filename),
		lock:     &sync.RWMutex{},
	}, nil
}

func (s *store) GetType() string {
	return types.FileStore
}

func (s *store) GetDatadir() string {
	return filepath.Dir(s.filePath)
}

func (s *store) AddData(_ context.Context, data types.Config) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	v := viper.New()
	v.SetConfigType("json")
	v.Set("node_url", data.NodeURL)
	v.Set("network", data.Network)
	if len(data.SignerAddress) > 0 {
		v.Set("signer_address", data.SignerAddress)
	}
	if err := v.WriteConfigAs(s.filePath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return os.Chmod(s.filePath, 0600)
}

func (s *store) GetData(_ context.Context) (*types.Config, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	if _, err := os.Stat(s.filePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	v := viper.New()
	v.SetConfigFile(s.filePath)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	data := &types.Config{}
	if err := v.Unmarshal(data); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return data, nil
}

func (s *store) CleanData(_ context.Context) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := os.Remove(s.filePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *store) Close() {}
