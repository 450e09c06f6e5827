// Copyright © 2018 One Concern

// Package config loads the texpack job configuration, creating a default one on first use.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/afero"

	"github.com/oneconcern/texpack/pkg/config/status"
	"github.com/oneconcern/texpack/pkg/errors"
	"github.com/oneconcern/texpack/pkg/model"
)

// DefaultPath is the job configuration file looked up in the working directory
const DefaultPath = "packerConfig.json"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Error reports a failure on the job configuration file.
//
// Kind is one of the status errors and matches with errors.Is.
type Error struct {
	Kind error
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v %q: %v", e.Kind, e.Path, e.Err)
}

// Unwrap the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is this error of the target status kind?
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

// Store is a file-backed job configuration
type Store struct {
	fs   afero.Fs
	path string
}

// New job configuration store at path. A nil fs defaults to the OS file system.
func New(fs afero.Fs, path string) *Store {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if path == "" {
		path = DefaultPath
	}
	return &Store{
		fs:   fs,
		path: path,
	}
}

// Path to the configuration file
func (s *Store) Path() string {
	return s.path
}

// Initialize writes the default job configuration if no file exists yet.
//
// An existing file is never rewritten: created is false in that case.
func (s *Store) Initialize(_ context.Context) (bool, error) {
	return s.writeDefault()
}

// LoadOrInitialize returns the job configuration, writing the default one first if none exists.
func (s *Store) LoadOrInitialize(ctx context.Context) (*model.JobConfig, error) {
	if _, err := s.Initialize(ctx); err != nil {
		return nil, err
	}
	return s.Load(ctx)
}

// Load the job configuration from an existing file
func (s *Store) Load(_ context.Context) (*model.JobConfig, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return nil, s.fail(status.ErrConfigRead, err)
	}
	var cfg model.JobConfig
	if err = json.Unmarshal(data, &cfg); err != nil {
		return nil, s.fail(status.ErrConfigParse, err)
	}
	// null decodes without error
	if json.Get(data).ValueType() != jsoniter.ObjectValue {
		return nil, s.fail(status.ErrConfigParse, errors.New("expected a JSON object with job lists"))
	}
	cfg.Normalize()
	return &cfg, nil
}

func (s *Store) writeDefault() (bool, error) {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0755); err != nil {
			return false, s.fail(status.ErrConfigWrite, err)
		}
	}
	// O_EXCL: a file created in between by another run is left alone
	f, err := s.fs.OpenFile(s.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if os.IsExist(err) || errors.Is(err, os.ErrExist) {
			return false, nil
		}
		return false, s.fail(status.ErrConfigWrite, err)
	}
	data, err := json.MarshalIndent(model.DefaultJobConfig(), "", "  ")
	if err != nil {
		_ = f.Close()
		return false, s.fail(status.ErrConfigWrite, err)
	}
	if _, err = f.Write(data); err != nil {
		_ = f.Close()
		return false, s.fail(status.ErrConfigWrite, err)
	}
	if err = f.Close(); err != nil {
		return false, s.fail(status.ErrConfigWrite, err)
	}
	return true, nil
}

// Dump renders a job configuration the way it is persisted
func Dump(cfg model.JobConfig) ([]byte, error) {
	return json.MarshalIndent(cfg, "", "  ")
}

func (s *Store) fail(kind, err error) error {
	return &Error{Kind: kind, Path: s.path, Err: err}
}
