package main

import (
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/cmd/stakedelegation/cmd"
)

func main() {
	cmd.Execute()
}
