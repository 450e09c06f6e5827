// Copyright © 2018 One Concern

// Package runner runs packing and unpacking jobs with the external texture packer.
//
// Each job is a child java process. Its standard output and standard error are streamed
// to the log line by line, and its exit status decides the outcome of the job.
package runner
