package cmd

type Config struct {
	HTTPPort       string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSslMode      string
	MinOrderAmount string
	MinOrderItems  string
	StalenessDays  string
}
