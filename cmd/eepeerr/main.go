package main

import "eepe-mcerror/internal/cli"

func main() {
	cli.Execute()
}
