package share

import (
	"crypto/md5"
	"encoding/hex"
	"time"
)

// hashLength is the length of a share hash in hex characters.
const hashLength = 16

// generateHash derives a short share hash from the series id and the
// current time, so repeated shares of the same series get distinct links.
func generateHash(seriesID string, now time.Time) string {
	sum := md5.Sum([]byte(seriesID + now.Format(time.RFC3339Nano)))
	return hex.EncodeToString(sum[:])[:hashLength]
}
