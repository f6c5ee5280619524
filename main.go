package main

import "jse/cmd"

func main() {
	cmd.Execute()
}
