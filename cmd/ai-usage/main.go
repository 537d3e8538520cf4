package main

import "github.com/jasperwreed/ai-usage/internal/cli"

func main() {
	cli.Execute()
}
