package main

import "github.com/khanhnv2901/seca-host/cmd"

var execCmd = cmd.Execute

func main() {
	execCmd()
}
