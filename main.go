package main

import "github.com/icco/genroll/cmd"

func main() {
	cmd.Execute()
}
