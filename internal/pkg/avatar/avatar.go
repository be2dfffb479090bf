package avatar

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

const defaultSize = 200

// URL derives a stable Gravatar URL from an email address, falling back
// to a generated identicon for addresses without a Gravatar account.
func URL(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return ""
	}
	sum := md5.Sum([]byte(email))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?d=identicon&s=%d", hex.EncodeToString(sum[:]), defaultSize)
}
