package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/abhayvishwakarma1111/bitezyqr/internal/config"
	"github.com/abhayvishwakarma1111/bitezyqr/internal/server"
	"github.com/abhayvishwakarma1111/bitezyqr/pkg/db"
	"github.com/abhayvishwakarma1111/bitezyqr/pkg/log"
)

func main() {
	app := fx.New(
		config.Module,
		log.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
