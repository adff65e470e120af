// Package main is the entry point for the overlayctl CLI tool.
package main

import (
	"github.com/godilite/overlay-server/internal/cmd"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

func main() {
	cmd.Execute()
}
