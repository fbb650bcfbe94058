package main

import (
	"github.com/kamal-hamza/shot/cmd"
)

func main() {
	cmd.Execute()
}
