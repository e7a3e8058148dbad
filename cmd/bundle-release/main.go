package main

import "bundle-release/internal/cli"

func main() {
	cli.Execute()
}
