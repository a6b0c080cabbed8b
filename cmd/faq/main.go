package main

import "faq/internal/cli"

func main() {
	cli.Execute()
}
