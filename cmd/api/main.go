package main

import (
	"go.uber.org/fx"

	"github.com/quickeats/quickeats/internal/app"
)

func main() {
	fx.New(app.Module).Run()
}
