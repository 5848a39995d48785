package main

import "github.com/kamusis/unitgen/cmd"

func main() {
	cmd.Execute()
}
