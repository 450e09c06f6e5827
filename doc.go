/*
Package texpack provides CLI tooling to pack and unpack texture atlases.

The packing work is delegated to the libGDX texture packer, a java program which texpack
downloads on first use. texpack reads a list of packing and unpacking jobs from a JSON job
configuration, and runs them as external processes: all unpacking jobs first, then all packing jobs.
*/
package texpack
