// Package model describes the base objects manipulated by texpack.
//
// The object model for texpack is composed of:
//
//  JobConfig:
//    The persisted job configuration (packerConfig.json), holding the packing and unpacking jobs.
//
//  PackJob:
//    A directory of raw images packed by the external texture packer into an atlas.
//
//  UnpackJob:
//    An existing atlas split back into its individual images.
package model
