package http

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"dino/internal/infrastructure/config"
	"dino/internal/shared/logger"
)

// recordingLogger captures Warnw messages so startup diagnostics can be
// asserted on.
type recordingLogger struct {
	logger.Interface
	warnings []string
}

func (l *recordingLogger) Warnw(msg string, keysAndValues ...interface{}) {
	l.warnings = append(l.warnings, msg)
}

func (l *recordingLogger) hasWarning(fragment string) bool {
	for _, w := range l.warnings {
		if strings.Contains(w, fragment) {
			return true
		}
	}
	return false
}

func newContainerConfig(qrKey string) *config.Config {
	cfg := &config.Config{}
	cfg.Auth.Password.BcryptCost = 4
	cfg.Auth.JWT.Secret = "test-secret"
	cfg.Auth.JWT.AccessExpMinutes = 5
	cfg.Auth.JWT.RefreshExpDays = 1
	cfg.QR.EncryptionKey = qrKey
	return cfg
}

func TestContainerWarnsOnNormalizedQRKey(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	t.Run("short key is flagged at startup", func(t *testing.T) {
		log := &recordingLogger{Interface: logger.NewLogger()}
		c := NewContainer(db, newContainerConfig("too-short"), log)
		defer c.Shutdown()

		assert.True(t, log.hasWarning("QR encryption key"))
	})

	t.Run("exact 32-byte key passes silently", func(t *testing.T) {
		log := &recordingLogger{Interface: logger.NewLogger()}
		c := NewContainer(db, newContainerConfig("0123456789abcdef0123456789abcdef"), log)
		defer c.Shutdown()

		assert.False(t, log.hasWarning("QR encryption key"))
	})
}
