package clients

import "time"

const (
	DEFAULT_TIMEOUT = 60 * time.Second
	USER_AGENT      = "aspectflow-client/1.0 (+https://github.com/spacesedan/aspectflow)"
)
