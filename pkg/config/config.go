package config

import "os"

type Config struct {
	Port             string
	Env              string
	MongoURI         string
	PostgresConnStr  string
	JWTSecret        string
	ClientURL        string
	MailtrapEndpoint string
	MailtrapToken    string
	EmailFrom        string
	EmailFromName    string
	CloudinaryURL    string
}

func Load() *Config {
	return &Config{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("ENV", "development"),
		MongoURI:         getEnv("MONGO_URI", ""),
		PostgresConnStr:  getEnv("POSTGRES_CONN_STR", ""),
		JWTSecret:        getEnv("JWT_SECRET", "supersecretjwtkey"),
		ClientURL:        getEnv("CLIENT_URL", "http://localhost:5173"),
		MailtrapEndpoint: getEnv("MAILTRAP_ENDPOINT", "https://send.api.mailtrap.io"),
		MailtrapToken:    getEnv("MAILTRAP_TOKEN", ""),
		EmailFrom:        getEnv("EMAIL_FROM", "no-reply@proconnect.dev"),
		EmailFromName:    getEnv("EMAIL_FROM_NAME", "ProConnect"),
		CloudinaryURL:    getEnv("CLOUDINARY_URL", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
