package main

import "github.com/pfrederiksen/bbwaa-awards/internal/cli"

func main() {
	cli.Execute()
}
