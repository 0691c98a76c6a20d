package main

import (
	"mmsmonthly/cmd/mms-monthly/cmd"
)

func main() {
	cmd.Execute()
}
