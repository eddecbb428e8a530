package main

import "startex/cmd"

func main() {
	cmd.Execute()
}
