package main

import (
	"github.com/medportal-org/portal/api"
)

func main() {
	api.MainLoop()
}
