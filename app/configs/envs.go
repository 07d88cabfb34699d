package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type ENV struct {
	DBHost              string
	DBUser              string
	DBPassword          string
	DBName              string
	DBPort              string
	Port                string
	AppEnv              string
	AppURL              string
	FrontendURL         string
	AppAuthKey          string
	AppEncKey           string
	EmailHost           string
	EmailPort           string
	EmailUsername       string
	EmailPassword       string
	EmailFrom           string
	MidtransClientKey   string
	MidtransServerKey   string
}

func LoadEnv() ENV {

	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}

	return ENV{
		DBHost:            os.Getenv("DB_HOST"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            os.Getenv("DB_NAME"),
		DBPort:            os.Getenv("DB_PORT"),
		Port:              os.Getenv("APP_PORT"),
		AppEnv:            os.Getenv("APP_ENV"),
		AppURL:            os.Getenv("APP_URL"),
		FrontendURL:       os.Getenv("FRONTEND_URL"),
		AppAuthKey:        os.Getenv("APP_AUTH_KEY"),
		AppEncKey:         os.Getenv("APP_ENC_KEY"),
		EmailHost:         os.Getenv("EMAIL_HOST"),
		EmailPort:         os.Getenv("EMAIL_PORT"),
		EmailUsername:     os.Getenv("EMAIL_USERNAME"),
		EmailPassword:     os.Getenv("EMAIL_PASSWORD"),
		EmailFrom:         os.Getenv("EMAIL_USERNAME"),
		MidtransClientKey: os.Getenv("MIDTRANS_CLIENT_KEY"),
		MidtransServerKey: os.Getenv("MIDTRANS_SERVER_KEY"),
	}

}

var LoadENV = LoadEnv()
