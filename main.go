package main

import "stocktake/cmd"

func main() {
	cmd.Execute()
}
