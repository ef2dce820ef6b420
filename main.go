package main

import "github.com/Tiliavir/mood-journal/cmd"

func main() {
	cmd.Execute()
}
