package config

import "os"

func IsDebug() bool {
	return os.Getenv("ANSWERBOT_DEBUG") == "1"
}
