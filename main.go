package main

import "github.com/lordralex/ballot/cmd"

func main() {
	cmd.Execute()
}
