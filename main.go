package main

import "github.com/sqlweft/sqlweft/cmd"

func main() {
	cmd.Execute()
}
