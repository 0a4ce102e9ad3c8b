package reservation

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// NewReferenceNo returns a code such as RES-1F2A-9C0B-77DE built from 48 random bits.
func NewReferenceNo() string {
	id := uuid.New()
	h := strings.ToUpper(hex.EncodeToString(id[10:16]))
	return "RES-" + h[0:4] + "-" + h[4:8] + "-" + h[8:12]
}
