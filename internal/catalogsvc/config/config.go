package config

import (
	"os"
)

type Config struct {
	AdminEmail    string
	BucketURL     string // e.g. file:///var/gamewiki/images or s3://gamewiki-images?region=eu-central-1
	PublicBaseURL string // prefix prepended to object keys to form public URLs
}

func Load() Config {
	return Config{
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		BucketURL:     os.Getenv("BUCKET_URL"),
		PublicBaseURL: os.Getenv("PUBLIC_BASE_URL"),
	}
}
