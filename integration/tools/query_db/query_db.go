package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/common"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/ledger/types"
	"github.com/WinterBoy-Galois/Stake-Delegation-Contract/store/database/backend"
)

func handleError(err error) {
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: query_db -data=<path_to_db> -chain=<chain_id> -type=power|checkpoints|proxy|events -address=<address> -height=<height>")
}

func printJSON(obj interface{}) {
	jsonStr, err := json.MarshalIndent(obj, "", "  ")
	handleError(err)
	fmt.Printf("%s\n", jsonStr)
}

func main() {
	dataPathPtr := flag.String("data", "", "path to the node database")
	backendPtr := flag.String("backend", "leveldb", "storage backend (leveldb|badger)")
	chainIDPtr := flag.String("chain", "", "chain ID")
	queryTypePtr := flag.String("type", "power", "type of object to query")
	addressPtr := flag.String("address", "", "address of the account or proxy")
	heightStrPtr := flag.String("height", "", "block height")
	categoryPtr := flag.String("category", "STAKE", "power category")

	flag.Parse()

	db, err := backend.Open(*backendPtr, *dataPathPtr, 256)
	handleError(err)
	defer db.Close()

	l := ledger.NewLedger(*chainIDPtr, db, ledger.DefaultParams())
	address := common.HexToAddress(*addressPtr)
	category, err := types.ParseCategory(*categoryPtr)
	handleError(err)

	switch *queryTypePtr {
	case "power":
		if *heightStrPtr == "" {
			power, err := l.CurrentPower(address, category)
			handleError(err)
			printJSON(map[string]interface{}{"height": l.Height(), "power": power})
			return
		}
		height, err := strconv.ParseUint(*heightStrPtr, 10, 64)
		handleError(err)
		power, err := l.GetPowerAtBlock(address, height, category)
		handleError(err)
		printJSON(map[string]interface{}{"height": height, "power": power})
	case "checkpoints":
		printJSON(l.Checkpoints(address, category))
	case "proxy":
		proxy, err := l.GetProxy(address)
		handleError(err)
		printJSON(proxy)
	case "events":
		printJSON(l.Events(0, l.EventCount()))
	default:
		printUsage()
	}
}
