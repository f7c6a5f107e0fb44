package main

import "github.com/photosphere/connect-admin-console/internal/cli"

func main() {
	cli.Execute()
}
