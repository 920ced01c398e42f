package main

import "github.com/knokko/bits/cmd/bittester/cmd"

// Version is the version of the binary.
var Version = "0.0.0"

func main() {
	cmd.Version = Version
	cmd.Execute()
}
