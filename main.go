package main

import "github.com/arcregistry/wallet-activation/cmd"

func main() {
	cmd.Execute()
}
