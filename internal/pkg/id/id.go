package id

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// New returns the id of one OTP issuance. It is stored with the record so a
// failed delivery can revoke exactly that issuance, and it ties the issue,
// send and verify log lines of one code together.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
