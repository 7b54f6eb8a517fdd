package users_repositories

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	users_models "taskboard/internal/features/users/models"
	"taskboard/internal/storage"

	"gorm.io/gorm"
)

// SecretKeyRepository persists the JWT signing secret so every instance
// signs with the same key. The secret is generated on first use.
type SecretKeyRepository struct {
	mu     sync.Mutex
	cached string
}

func (r *SecretKeyRepository) GetSecretKey() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cached != "" {
		return r.cached, nil
	}

	var key users_models.SecretKey

	err := storage.GetDb().Take(&key).Error
	if err == nil {
		r.cached = key.Secret
		return r.cached, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("failed to load secret key: %w", err)
	}

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return "", fmt.Errorf("failed to generate secret key: %w", err)
	}

	key = users_models.SecretKey{Secret: hex.EncodeToString(secret)}
	if err := storage.GetDb().Create(&key).Error; err != nil {
		return "", fmt.Errorf("failed to store secret key: %w", err)
	}

	r.cached = key.Secret

	return r.cached, nil
}
