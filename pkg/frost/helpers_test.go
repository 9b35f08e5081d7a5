package frost_test

import (
	"io"
	mathrand "math/rand"
)

func detRNG(seed int64) io.Reader {
	return mathrand.New(mathrand.NewSource(seed))
}
