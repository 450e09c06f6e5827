// Copyright © 2018 One Concern

package model

import (
	"path/filepath"
)

// JobKind tells packing jobs from unpacking jobs
type JobKind string

const (
	// KindPack identifies a packing job
	KindPack JobKind = "pack"

	// KindUnpack identifies an unpacking job
	KindUnpack JobKind = "unpack"
)

// PackJob describes a packing job: images found in RawDirectory are packed as
// an atlas named PackName into OutputDirectory.
type PackJob struct {
	Name            string `json:"name" yaml:"name"` // label only
	RawDirectory    string `json:"rawDirectory" yaml:"rawDirectory"`
	OutputDirectory string `json:"outputDirectory" yaml:"outputDirectory"`
	PackName        string `json:"packName" yaml:"packName"`
}

// UnpackJob describes an unpacking job: the atlas AtlasToUnpack is split into
// individual images in OutputDirectory.
type UnpackJob struct {
	Name            string `json:"name" yaml:"name"` // label only
	AtlasToUnpack   string `json:"atlasToUnpack" yaml:"atlasToUnpack"`
	OutputDirectory string `json:"outputDirectory" yaml:"outputDirectory"`
}

// AtlasDirectory is the parent directory of the atlas, where the atlas page images live.
//
// An atlas path without a directory component yields ".".
func (j UnpackJob) AtlasDirectory() string {
	return filepath.Dir(j.AtlasToUnpack)
}

// JobConfig is the persisted job configuration
type JobConfig struct {
	PackingConfigs   []PackJob   `json:"packingConfigs" yaml:"packingConfigs"`
	UnpackingConfigs []UnpackJob `json:"unpackingConfigs" yaml:"unpackingConfigs"`
}

// DefaultJobConfig returns the configuration written when none exists yet:
// one sample packing job and no unpacking job.
func DefaultJobConfig() JobConfig {
	return JobConfig{
		PackingConfigs: []PackJob{
			{
				Name:            "Pack 1",
				RawDirectory:    "input",
				OutputDirectory: "output",
				PackName:        "packed",
			},
		},
		UnpackingConfigs: []UnpackJob{},
	}
}

// Normalize replaces missing job lists by empty ones
func (c *JobConfig) Normalize() {
	if c.PackingConfigs == nil {
		c.PackingConfigs = []PackJob{}
	}
	if c.UnpackingConfigs == nil {
		c.UnpackingConfigs = []UnpackJob{}
	}
}
