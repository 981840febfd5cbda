package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"kitchen/cmd"
	kitchenhttp "kitchen/internal/adapters/in/http"
	"kitchen/internal/adapters/out/postgres/itemrepo"
	"kitchen/internal/adapters/out/postgres/ticketrepo"
	"kitchen/internal/adapters/out/rabbitmq"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := connectDatabase(configs)
	rabbitConn := connectBroker(configs)
	defer rabbitConn.Close()

	app := cmd.NewCompositionRoot(configs, gormDB, rabbitmq.NewPublisher(rabbitConn), logger)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:       goDotEnvVariable("HTTP_PORT"),
		DBHost:         goDotEnvVariable("DB_HOST"),
		DBPort:         goDotEnvVariable("DB_PORT"),
		DBUser:         goDotEnvVariable("DB_USER"),
		DBPassword:     goDotEnvVariable("DB_PASSWORD"),
		DBName:         goDotEnvVariable("DB_NAME"),
		DBSslMode:      goDotEnvVariable("DB_SSLMODE"),
		RabbitHost:     goDotEnvVariable("RABBIT_HOST"),
		RabbitPort:     goDotEnvVariable("RABBIT_PORT"),
		RabbitUser:     goDotEnvVariable("RABBIT_USER"),
		RabbitPassword: goDotEnvVariable("RABBIT_PASSWORD"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func connectDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := gormDB.AutoMigrate(&ticketrepo.TicketDTO{}, &itemrepo.ItemDTO{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func connectBroker(configs cmd.Config) rabbitmq.Connection {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		configs.RabbitUser, configs.RabbitPassword, configs.RabbitHost, configs.RabbitPort)

	conn, err := rabbitmq.Connect(url)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	return conn
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	transitionItemHandler := app.CreateTransitionItemCommandHandler()
	server := kitchenhttp.NewServer(
		app.CreateOpenTicketCommandHandler(),
		&transitionItemHandler,
		app.CreateTransitionItemsCommandHandler(&transitionItemHandler),
		app.CreateBumpTicketCommandHandler(),
		app.CreateGetOpenTicketsQueryHandler(),
		app.CreateGetTicketViewQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
