package store

import (
	"bytes"

	"github.com/google/uuid"
)

// pair — ключ неупорядоченной пары пользователей: (A,B) и (B,A) дают один и тот же ключ
type pair struct {
	lo, hi uuid.UUID
}

func pairOf(a, b uuid.UUID) pair {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}
	return pair{lo: a, hi: b}
}
