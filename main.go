package main

import "github.com/pivolan/torque_analyzer/cmd"

func main() {
	cmd.Execute()
}
