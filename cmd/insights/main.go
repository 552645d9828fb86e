package main

import "prompt-insights/internal/cli"

func main() {
	cli.Execute()
}
