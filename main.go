package main

import "github.com/marcgrab/marcgrab/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
