package main

import "tron-connector/cmd/connector-cli/cmd"

func main() {
	cmd.Execute()
}
