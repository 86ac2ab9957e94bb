package main

import (
	"github.com/capiwear/storefront/cmd"
)

func main() {
	cmd.Start()
}
