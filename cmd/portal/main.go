package main

import "github.com/fesdmit/portal/cmd/portal/cmd"

func main() {
	cmd.Execute()
}
