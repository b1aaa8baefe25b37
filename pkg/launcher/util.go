package launcher

import (
	"log"
	"os"
)

// debugLog logs debug messages only if OAT_DEBUG is set
func debugLog(format string, args ...interface{}) {
	if os.Getenv("OAT_DEBUG") != "" {
		log.Printf(format, args...)
	}
}
