package main

import (
	"github.com/example/visit-booker/cmd"
)

func main() {
	cmd.Execute()
}
