// main is the entry point for the hpma CLI.
package main

import (
	"os"

	"github.com/hpmalabs/hpma/cmd"
	"github.com/hpmalabs/hpma/internal/contract"
	"github.com/hpmalabs/hpma/internal/iocache"
)

func main() {
	defer iocache.CloseStores()
	cmd.SetCacheManager(iocache.Manager)

	if err := cmd.Execute(); err != nil {
		contract.LogWarn("Command failed", err)
		iocache.CloseStores()
		os.Exit(1)
	}
}
