package main

import "hospitalsched/cmd/client/cmd"

func main() {
	cmd.Execute()
}
