package config

import "os"

func IsDebug() bool {
	return os.Getenv("AITALK_DEBUG") == "1"
}
