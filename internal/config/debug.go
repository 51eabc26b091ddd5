package config

import "os"

func IsDebug() bool {
	return os.Getenv("RAIDER_DEBUG") == "1"
}
