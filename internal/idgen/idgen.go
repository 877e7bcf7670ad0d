// Package idgen produces the three pieces of security material every
// load carries: the human-readable load id, the pickup PIN and the
// verification token.
package idgen

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const (
	loadIDPrefix = "DTH-"
	maxAttempts  = 5
)

// ErrGenerationExhausted is returned when a unique load id cannot be
// found within the attempt cap.
var ErrGenerationExhausted = errors.New("load id generation exhausted")

// ExistsFunc reports whether a load id is already taken.
type ExistsFunc func(ctx context.Context, loadID string) (bool, error)

// GenerateLoadID returns a collision-checked "DTH-" + 6 uppercase hex id.
func GenerateLoadID(ctx context.Context, exists ExistsFunc) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		buf := make([]byte, 3)
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		loadID := loadIDPrefix + strings.ToUpper(hex.EncodeToString(buf))

		taken, err := exists(ctx, loadID)
		if err != nil {
			return "", err
		}
		if !taken {
			return loadID, nil
		}
	}
	return "", ErrGenerationExhausted
}

// GeneratePIN draws a uniform integer in [100000, 999999] and truncates
// the decimal form to length from the left. PINs are scoped per load, so
// collisions across loads are fine.
func GeneratePIN(length int) string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken;
		// there is nothing sensible to fall back to.
		panic(fmt.Sprintf("idgen: crypto/rand failed: %v", err))
	}
	pin := fmt.Sprintf("%06d", n.Int64()+100000)
	if length > 0 && length < len(pin) {
		return pin[:length]
	}
	return pin
}

// GenerateToken returns the opaque public lookup key for a load. The
// storage layer carries a unique index on it as defense-in-depth.
func GenerateToken() string {
	return uuid.NewString()
}
