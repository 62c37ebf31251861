package main

import "github.com/lepinkainen/steamlens/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
