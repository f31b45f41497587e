package main

import (
	"netinventory/cmd/inventory-cli/commands"
	"netinventory/internal/components/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}
