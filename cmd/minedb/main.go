package main

import "github.com/acdh-oeaw/minedb/cmd"

func main() {
	cmd.Execute()
}
