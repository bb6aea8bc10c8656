package main

import "github.com/austiecodes/promptrec/internal/commands"

func main() {
	commands.Execute()
}
