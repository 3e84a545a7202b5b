package main

import "github.com/DimStarGB/COD42WOLFET-BRUSH-PORTER/internal/cli"

func main() {
	cli.Execute()
}
