// Command example shows library usage of the smartlog package.
package main

import (
	"log"
	"os"

	"go-smartlog/pkg/smartlog"
)

func main() {
	result, err := smartlog.Build(smartlog.Options{
		Path:          ".",
		DateLimitDays: 30,
	})
	if err != nil {
		log.Fatal(err)
	}

	if err := result.Render(os.Stdout); err != nil {
		log.Fatal(err)
	}
}
