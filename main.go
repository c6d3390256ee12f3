package main

import "github.com/fieldprint/slicer/cmd"

func main() {
	cmd.Execute()
}
