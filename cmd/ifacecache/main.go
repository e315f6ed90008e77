package main

import "ifacecache/internal/cli"

func main() {
	cli.Execute()
}
