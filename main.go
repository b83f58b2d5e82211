package main

import "github.com/agentic-research/mirrortree/cmd"

func main() {
	cmd.Execute()
}
