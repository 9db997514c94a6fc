package main

import "nakofront/cmd"

func main() {
	cmd.Execute()
}
