package main

import "github.com/tanq16/docgrab/cmd"

func main() {
	cmd.Execute()
}
