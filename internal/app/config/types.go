package config

type (
	InternalConfig struct {
		App    App
		Claims Claims
	}

	DriverConfig struct {
		PostgresDB PostgresDB
		MongoDB    MongoDB
		Redis      Redis
		RabbitMQ   RabbitMQ
		Logger     Logger
	}

	App struct {
		Env                        string
		Port                       string
		Version                    string
		Address                    string
		Timezone                   string
		EndpointPrefix             string
		MaxRequests                int
		ShutdownTimeout            int
		MaxTimeRequestsPerSeconds  int
		RequestBodyLimitInMegabyte int
	}

	Claims struct {
		GatewayTimeoutInSeconds     int
		GatewayMaxRetries           int
		GatewayRequestsPerSecond    float64
		CallbackPrefetch            int
		CallbackMaxAttempts         int
		WorkerIntervalInSeconds     int
		WorkerBatchSize             int
		ClaimLockTTLInSeconds       int
		WebhookTokenLeewayInSeconds int
	}

	PostgresDB struct {
		Port     string
		Host     string
		DBName   string
		Username string
		Password string
	}
	MongoDB struct {
		Port     string
		Host     string
		DbName   string
		Username string
		Password string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
	}
	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
)
