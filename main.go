package main

import "pool-market-client/cmd"

func main() {
	cmd.Run()
}
