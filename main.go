package main

import "github.com/wmuchiri/kaziflow/cmd"

func main() {
	cmd.Execute()
}
