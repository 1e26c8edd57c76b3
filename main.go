package main

import "github.com/theirongolddev/buyrent/cmd"

func main() {
	cmd.Execute()
}
