package lightly

import (
	"crypto/rand"
	"encoding/base32"
)

// a taskID is an opaque, printable identifier for a spawned Task, used only
// for diagnostics (logging, String methods). It carries no scheduling
// meaning.
type taskID string

func randTaskID() taskID {
	b := make([]byte, 10)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return taskID(base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(b))
}
