package main

import (
	"context"
	"fmt"
	"log"

	"github.com/common-nighthawk/go-figure"

	"github.com/MrSnakeDoc/statuspage/internal/app"
	"github.com/MrSnakeDoc/statuspage/internal/version"
)

func main() {
	displayAppname("statuspage")

	a, err := app.New(context.Background())
	if err != nil {
		log.Fatalf("❌ statuspage failed to start: %v", err)
	}
	if err := a.Run(); err != nil {
		log.Fatalf("❌ statuspage stopped with error: %v", err)
	}
}

func displayAppname(appname string) {
	figure.NewFigure(appname, "cybermedium", true).Print()
	fmt.Printf("version %s\n\n", version.Version)
}
