package main

import "objectio/cmd"

func main() {
	cmd.Execute()
}
