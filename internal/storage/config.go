package storage

import "os"

// MinIOConfig holds connection settings for the optional direct-storage mode.
// When Endpoint is empty the dashboard uses the upstream storage endpoints
// instead.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	// PublicBaseURL is the externally reachable URL prefix objects are served
	// from (e.g. a CDN or the MinIO endpoint itself). Upload results join
	// this with the object key.
	PublicBaseURL string
}

// LoadMinIOConfig loads direct-mode storage config from environment
func LoadMinIOConfig() *MinIOConfig {
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"
	return &MinIOConfig{
		Endpoint:      os.Getenv("MINIO_ENDPOINT"),
		AccessKey:     os.Getenv("MINIO_ACCESS_KEY"),
		SecretKey:     os.Getenv("MINIO_SECRET_KEY"),
		UseSSL:        useSSL,
		Bucket:        getEnv("MINIO_BUCKET", "dashboard"),
		PublicBaseURL: os.Getenv("MINIO_PUBLIC_URL"),
	}
}

func getEnv(k, d string) string {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	return v
}
