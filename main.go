package main

import "resource-union/cmd"

func main() {
	cmd.Execute()
}
