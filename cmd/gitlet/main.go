package main

import (
	"os"

	"gitlet/cmd/gitlet/commands"
)

func main() {
	os.Exit(commands.Execute())
}
