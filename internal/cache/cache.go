package cache

import (
	"crypto/tls"
	"sync"

	"taskboard/internal/config"
	"taskboard/internal/util/logger"

	"github.com/valkey-io/valkey-go"
)

var (
	once         sync.Once
	valkeyClient valkey.Client
)

// GetCache returns the shared Valkey client, or nil when no cache is
// configured (tests and cache-less deployments). Callers must treat a
// nil client as "no caching".
func GetCache() valkey.Client {
	once.Do(func() {
		env := config.GetEnv()

		if env.IsTesting || env.ValkeyHost == "" {
			return
		}

		options := valkey.ClientOption{
			InitAddress: []string{env.ValkeyHost + ":" + env.ValkeyPort},
			Password:    env.ValkeyPassword,
			Username:    env.ValkeyUsername,
		}

		if env.ValkeyIsSsl {
			options.TLSConfig = &tls.Config{
				ServerName: env.ValkeyHost,
			}
		}

		client, err := valkey.NewClient(options)
		if err != nil {
			logger.GetLogger().Error("Failed to connect to Valkey", "error", err)
			panic(err)
		}

		valkeyClient = client
	})

	return valkeyClient
}
