package main

import "github.com/guzzzlikz/web-kachki-client/cmd/kachkictl/cmd"

func main() {
	cmd.Execute()
}
