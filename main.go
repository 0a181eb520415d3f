package main

import "github.com/ehusby/qreport/cmd"

func main() {
	cmd.Execute()
}
