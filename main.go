package main

import (
	"github.com/MisterMaroki/Superclip-sub001/cmd"
)

func main() {
	cmd.Execute()
}
