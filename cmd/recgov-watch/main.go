package main

import "github.com/mfrye/recgov-watch/internal/cli"

func main() {
	cli.Execute()
}
