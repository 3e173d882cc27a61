package main

import "github.com/pfrederiksen/careerdb/internal/cli"

func main() {
	cli.Execute()
}
