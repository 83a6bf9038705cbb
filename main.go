package main

import "github.com/chriserin/jsxgen/cmd"

func main() {
	cmd.Execute()
}
