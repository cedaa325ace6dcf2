package main

import "github.com/aalvaropc/neuroreport/internal/cli"

func main() {
	cli.Execute()
}
