package main

import "github.com/scanops/triage/internal/cli"

func main() {
	cli.Execute()
}
