//go:build tinygo

package main

import (
	"izzymon/app"
	"izzymon/hal"
)

func main() {
	app.Run(hal.New(), app.DefaultConfig())
}
