package main

import "github.com/vietddude/readflow/internal/cli"

func main() {
	cli.Execute()
}
