package main

import (
	"log"
	"strings"

	"github.com/spf13/cobra/doc"

	sdcli "github.com/WinterBoy-Galois/Stake-Delegation-Contract/cmd/sdcli/cmd"
	stakedelegation "github.com/WinterBoy-Galois/Stake-Delegation-Contract/cmd/stakedelegation/cmd"
)

func generateCliDoc(filePrepender, linkHandler func(string) string) {
	var all = sdcli.RootCmd
	err := doc.GenMarkdownTreeCustom(all, "./cli/", filePrepender, linkHandler)
	if err != nil {
		log.Fatal(err)
	}
}

func generateNodeDoc(filePrepender, linkHandler func(string) string) {
	var all = stakedelegation.RootCmd
	err := doc.GenMarkdownTreeCustom(all, "./node/", filePrepender, linkHandler)
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	filePrepender := func(filename string) string {
		return ""
	}

	linkHandler := func(name string) string {
		return strings.ToLower(name)
	}

	generateCliDoc(filePrepender, linkHandler)
	generateNodeDoc(filePrepender, linkHandler)
	Walk("./cli/", "./node/")
}
