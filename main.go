package main

import "github.com/theirongolddev/spent/cmd"

func main() {
	cmd.Execute()
}
