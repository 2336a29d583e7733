package api

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"

	"github.com/medportal-org/portal/auth"
	"github.com/medportal-org/portal/chatbot"
	"github.com/medportal-org/portal/config"
	"github.com/medportal-org/portal/doctors"
	"github.com/medportal-org/portal/logger"
	"github.com/medportal-org/portal/parser"
	"github.com/medportal-org/portal/patients"
	"github.com/medportal-org/portal/records"
	"github.com/medportal-org/portal/store"
)

func Start(e *echo.Echo, cfg *config.Config, lifecycle fx.Lifecycle) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := e.Start(fmt.Sprintf(":%d", cfg.HttpPort)); err != nil {
					fmt.Println(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return e.Shutdown(ctx)
		},
	})
}

func SetReady(healthCheck *HealthCheck, db *mongo.Database, lifecycle fx.Lifecycle) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := db.Client().Ping(ctx, nil); err != nil {
				return err
			}

			// It's important this is set after mongo is initialized, which is ensured
			// by taking a dependency on mongo in the constructor, because lifecycle hooks
			// are executed in topological order
			healthCheck.SetReady(true)
			return nil
		},
		OnStop: nil,
	})
}

func Dependencies() []fx.Option {
	return []fx.Option{
		fx.Provide(
			logger.NewProductionLogger,
			logger.Suggar,
			config.NewFromEnv,
			store.NewConfig,
			store.GetConnectionString,
			store.NewClient,
			store.NewDatabase,
			patients.NewRepository,
			patients.NewService,
			doctors.NewRepository,
			doctors.NewService,
			records.NewRepository,
			records.NewService,
			chatbot.NewConfig,
			chatbot.NewClient,
			chatbot.NewChatbot,
			func(c *chatbot.Chatbot) parser.StructuredGenerator { return c },
			parser.NewReportParser,
			auth.NewConfig,
			auth.NewAuthenticator,
			NewHealthCheck,
			NewHandler,
			NewServer,
		),
	}
}

func MainLoop() {
	options := append(
		Dependencies(),
		fx.Invoke(SetReady),
		fx.Invoke(Start),
	)
	fx.New(options...).Run()
}
