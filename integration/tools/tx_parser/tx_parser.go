package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/types"
)

func handleError(err error) {
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: tx_parser <tx_HEX>")
}

func main() {
	args := os.Args[1:]
	if len(args) != 1 {
		printUsage()
		return
	}

	raw, err := hex.DecodeString(strings.TrimPrefix(args[0], "0x"))
	handleError(err)

	tx, err := types.TxFromBytes(raw)
	handleError(err)

	jsonStr, err := json.MarshalIndent(tx, "", "  ")
	handleError(err)
	fmt.Printf("\n%T\n%s\n\n", tx, jsonStr)
}
