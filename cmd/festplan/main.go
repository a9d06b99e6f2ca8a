package main

import "github.com/pfrederiksen/festplan/internal/cli"

func main() {
	cli.Execute()
}
