package config

import "time"

const (
	DefaultHTTPPort        = "8080"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultWorkerPoll      = 250 * time.Millisecond
	DefaultWorkerBatch     = 10
	DefaultJobTimeout      = 5 * time.Second
	DefaultStaleAfter      = 2 * time.Minute
	DefaultJobMargin       = 2 * time.Second
	DefaultPGMaxConns      = 5
	DefaultPGMinConns      = 1
	DefaultChatBuffer      = 16
	DefaultWSWriteTimeout  = 10 * time.Second
	DefaultWSPingInterval  = 30 * time.Second
	DefaultListenerMinWait = 10 * time.Second
	DefaultListenerMaxWait = time.Minute
)
