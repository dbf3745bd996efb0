package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_DSN(t *testing.T) {
	cfg := Config{
		DBHost:     "db",
		DBPort:     "5432",
		DBUser:     "shop",
		DBPassword: "p@ss word",
		DBName:     "storefront",
	}

	assert.Equal(t, "postgres://shop:p%40ss%20word@db:5432/storefront?sslmode=disable", cfg.DSN())

	cfg.DBSslMode = "require"
	assert.Equal(t, "postgres://shop:p%40ss%20word@db:5432/storefront?sslmode=require", cfg.DSN())
}
