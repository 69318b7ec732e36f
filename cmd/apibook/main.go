package main

import "github.com/mvp-joe/apibook/internal/cli"

func main() {
	cli.Execute()
}
