package main

import (
	"github.com/medportal-org/portal/cmd/admin/command"
)

func main() {
	command.Execute()
}
