package main

import "ccrtsite/cmd"

func main() {
	cmd.Execute()
}
