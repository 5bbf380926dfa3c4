package main

import "github.com/clarynt/clarynt/cmd"

func main() {
	cmd.Execute()
}
