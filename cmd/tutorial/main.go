package main

import "github.com/voicetreelab/lazy-tutorial/internal/cli"

func main() {
	cli.Execute()
}
