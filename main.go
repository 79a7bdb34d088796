package main

import "go-smartlog/cmd"

func main() {
	cmd.Execute()
}
