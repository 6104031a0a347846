package main

import "github.com/poslens/poslens-cli/cmd"

func main() {
	cmd.Execute()
}
