package main

import (
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/cmd/sdcli/cmd"
)

func main() {
	cmd.Execute()
}
