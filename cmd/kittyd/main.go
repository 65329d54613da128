/*
kittyd runs the kitty ledger and marketplace.

It can serve the application to a tendermint node over the ABCI socket
(kittyd start) or run it standalone, where every transaction command
executes as its own block on the local state:

	kittyd keys new alice
	kittyd init genesis.json
	kittyd create --from alice
	kittyd list 1 "50 KIT" --from alice
	kittyd buy 1 --from bob
	kittyd owned $(kittyd keys show bob)
*/
package main

import (
	"fmt"
	"os"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
