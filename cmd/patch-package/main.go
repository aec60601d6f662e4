package main

import "patch-package/internal/cli"

func main() {
	cli.Execute()
}
