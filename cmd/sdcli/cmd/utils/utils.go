package utils

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	isatty "github.com/mattn/go-isatty"
	"github.com/mgutz/ansi"
	"github.com/spf13/viper"
	"github.com/ybbus/jsonrpc"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common"
)

var errorColor = ansi.ColorFunc("red+b")

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Error prints the message to stderr, highlighted on a terminal, and exits.
func Error(msg string, args ...interface{}) {
	out := fmt.Sprintf(msg, args...)
	if isTerminal(os.Stderr) {
		out = errorColor(out)
	}
	fmt.Fprint(os.Stderr, out)
	os.Exit(1)
}

// Call invokes method on the configured endpoint, exiting on any error.
func Call(method string, args interface{}) *jsonrpc.RPCResponse {
	client := jsonrpc.NewRPCClient(viper.GetString(CfgRemoteRPCEndpoint))

	res, err := client.Call(method, args)
	if err != nil {
		Error("Failed to call %v: %v\n", method, err)
	}
	if viper.GetBool(CfgDebug) {
		spew.Fdump(os.Stderr, res)
	}
	if res.Error != nil {
		Error("Server returned error: %v\n", res.Error)
	}
	return res
}

// PrintResult prints the result of res as indented JSON.
func PrintResult(res *jsonrpc.RPCResponse) {
	formatted, err := json.MarshalIndent(res.Result, "", "    ")
	if err != nil {
		Error("Failed to parse server response: %v\n", err)
	}
	fmt.Println(string(formatted))
}

// ParseAddress parses a hex address flag, exiting when malformed.
func ParseAddress(name, s string) common.Address {
	if !common.IsHexAddress(s) {
		Error("Invalid %v address: %q\n", name, s)
	}
	return common.HexToAddress(s)
}
