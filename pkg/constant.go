package pkg

import "math"

const (
	INF_FLOW int64 = math.MaxInt64 / 4
)

const (
	DEBUG = false
)
