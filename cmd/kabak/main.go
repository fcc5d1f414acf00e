package main

import "github.com/mcoot/kabak/internal/cli"

func main() {
	cli.Execute()
}
