// Copyright © 2018 One Concern

package main

import (
	"github.com/oneconcern/texpack/cmd/texpack/cmd"
)

func main() {
	cmd.Execute()
}
