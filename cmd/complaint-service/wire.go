//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package main

import (
	"complaint-service/internal/biz"
	"complaint-service/internal/conf"
	"complaint-service/internal/data"
	"complaint-service/internal/enrichment"
	"complaint-service/internal/infra/eventbus"
	"complaint-service/internal/server"
	"complaint-service/internal/service"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

// wireApp init kratos application.
func wireApp(*conf.Server, *conf.Data, *conf.Geolocation, log.Logger) (*kratos.App, func(), error) {
	panic(wire.Build(
		server.ProviderSet,
		data.ProviderSet,
		biz.ProviderSet,
		service.ProviderSet,
		enrichment.ProviderSet,
		eventbus.ProviderSet,
		wire.Bind(new(biz.CountryResolver), new(*enrichment.GeoLocationClient)),
		newApp,
	))
}
