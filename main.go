/*
	Copyright 2025 The openf1db authors
*/

package main

import "github.com/openf1db/openf1-ingest-go/cmd"

func main() {
	cmd.Execute()
}
