package main

import "github.com/finarchitect/resetpass/cmd/finarch-cli/cmd"

func main() {
	cmd.Execute()
}
