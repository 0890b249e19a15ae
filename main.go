package main

import (
	"github.com/ColonelBlimp/fanremote/cmd"
	"github.com/ColonelBlimp/fanremote/internal/recovery"
)

func main() {
	defer recovery.HandlePanic()
	cmd.Execute()
}
