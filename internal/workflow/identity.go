package workflow

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const suffixAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Identity derives order identifiers from the confirmation instant.
type Identity struct {
	// Suffix returns the 4-character random part of a tracking number.
	Suffix func() string
	// ItemID returns a fresh id for an item copied into a confirmed order.
	ItemID func() string
}

func NewIdentity() *Identity {
	return &Identity{Suffix: randomSuffix, ItemID: func() string { return "item-" + uuid.NewString() }}
}

// OrderID is "ORD-" followed by unix milliseconds. Two confirms within the
// same millisecond collide.
func (i *Identity) OrderID(at time.Time) string {
	return "ORD-" + strconv.FormatInt(at.UnixMilli(), 10)
}

// TrackingNumber is "DK-YYMMDD-XXXX" using the UTC date of at.
func (i *Identity) TrackingNumber(at time.Time) string {
	return "DK-" + at.UTC().Format("060102") + "-" + i.Suffix()
}

func randomSuffix() string {
	b := make([]byte, 4)
	size := big.NewInt(int64(len(suffixAlphabet)))
	for k := range b {
		n, err := rand.Int(rand.Reader, size)
		if err != nil {
			// crypto/rand does not fail on supported platforms
			panic(err)
		}
		b[k] = suffixAlphabet[n.Int64()]
	}
	return string(b)
}
