package main

import (
	"github.com/dexcli/dex/cmd"
	"github.com/dexcli/dex/config"
	"github.com/dexcli/dex/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
