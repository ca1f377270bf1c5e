package main

import "github.com/SageMyrloc/Torchbearers-Frontend/internal/cli"

func main() {
	cli.Execute()
}
