package main

import (
	"github.com/boxoffice-api/boxoffice/pkg/cli"
)

func main() {
	cli.Execute()
}
