package main

import "bunker/cmd"

func main() {
	cmd.Execute()
}
