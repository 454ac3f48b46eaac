package main

import (
	"github.com/bornholm/mountns/internal/command"
	"github.com/bornholm/mountns/internal/command/resolve"
	"github.com/bornholm/mountns/internal/command/serve"
	"github.com/bornholm/mountns/internal/command/stat"
	"github.com/bornholm/mountns/internal/command/table"
)

func main() {
	command.Main(
		"mountns", "a unified namespace over mounted storage backends",
		serve.Command(),
		resolve.Command(),
		stat.Command(),
		table.Command(),
	)
}
