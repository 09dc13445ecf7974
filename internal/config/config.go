package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App               App               `mapstructure:",squash"`
	Server            Server            `mapstructure:",squash"`
	Database          Database          `mapstructure:",squash"`
	Auth              Auth              `mapstructure:",squash"`
	DataSources       DataSources       `mapstructure:",squash"`
	Report            Report            `mapstructure:",squash"`
	DailyPricingSync  DailyPricingSync  `mapstructure:",squash"`
	WeeklyGradingSync WeeklyGradingSync `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

// DataSources aponta para os arquivos de entrada: o snapshot de estoque e o
// diretório com os arquivos mensais de vendas (um por mês, "M-AAAA.txt").
type DataSources struct {
	InventoryFile string `mapstructure:"inventory_file"`
	SalesDir      string `mapstructure:"sales_dir"`
}

type Report struct {
	OutputDir string `mapstructure:"report_output_dir"`
}

type DailyPricingSync struct {
	CronSchedule string `mapstructure:"daily_pricing_sync_cron"`
	Enabled      bool   `mapstructure:"daily_pricing_sync_enabled"`
}

type WeeklyGradingSync struct {
	CronSchedule string `mapstructure:"weekly_grading_sync_cron"`
	Enabled      bool   `mapstructure:"weekly_grading_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/season_pricing")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("AUTH_SECRET", "your_auth_secret")

	viper.SetDefault("INVENTORY_FILE", "data/Inventory.txt")
	viper.SetDefault("SALES_DIR", "data/sales")
	viper.SetDefault("REPORT_OUTPUT_DIR", "reports")

	// Recomendações de preço todos os dias às 5h da manhã
	viper.SetDefault("DAILY_PRICING_SYNC_CRON", "0 5 * * *")
	viper.SetDefault("DAILY_PRICING_SYNC_ENABLED", false)

	// Nota retrospectiva toda segunda-feira às 6h da manhã
	viper.SetDefault("WEEKLY_GRADING_SYNC_CRON", "0 6 * * 1")
	viper.SetDefault("WEEKLY_GRADING_SYNC_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
