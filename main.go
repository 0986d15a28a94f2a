package main

import "github.com/raditia/gerai/cmd"

func main() {
	cmd.Execute()
}
