package main

import "nordlayer-server/cmd"

func main() {
	cmd.Execute()
}
