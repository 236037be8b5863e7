package main

import (
	"github.com/praetorian-inc/netdump/cmd"
)

func main() {
	cmd.Execute()
}
