package constants

import "os"

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func GetOutDir() string {
	return getEnv("OUT_PATH", "./out")
}

// GetMediaDir returns "" when MEDIA_PATH is unset.
func GetMediaDir() string {
	return os.Getenv("MEDIA_PATH")
}

func GetPort() string {
	return getEnv("PORT", "8080")
}

func GetLogLevel() string {
	return getEnv("LOG_LEVEL", "info")
}

// GetMetadataEndpoint returns "" when metadata lookups are disabled.
func GetMetadataEndpoint() string {
	return os.Getenv("METADATA_ENDPOINT")
}

func GetMetadataTable() string {
	return getEnv("METADATA_TABLE", "pianoscribe-metadata")
}

// largest request body the server accepts
const MaxRequestBytes = 4 << 20

const MaxOnsetsPerRequest = 100000
