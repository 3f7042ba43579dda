package main

import "github.com/oshokin/battery-alarm/cmd/battery-alarm/cmd"

func main() {
	cmd.Execute()
}
