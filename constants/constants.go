package constants

import "time"

// shared constants used by multiple packages

const (
	IMPORT_KIND_FREE = "free"
	IMPORT_KIND_PAID = "paid"

	// paid orders leave this service once handed to the on-chain importer
	IMPORT_STATE_HANDED_OFF = "handed_off"
)

const (
	EVENT_QUEUE_SIZE = 1000

	SHUTDOWN_TIMEOUT = 10 * time.Second
)
