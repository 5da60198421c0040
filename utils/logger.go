package utils

import (
	"os"
	"time"

	log "github.com/sirupsen/logrus"
)

// init configures the process-wide logger: JSON lines on stdout, level
// overridable through LOG_LEVEL.
func init() {
	log.SetFormatter(&log.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})
	log.SetOutput(os.Stdout)

	if lvl, err := log.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(lvl)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

// ListingFields builds the common field set for listing-scoped log lines,
// merged with any extra fields the caller adds.
func ListingFields(listingID string, extra map[string]any) map[string]any {
	fields := map[string]any{"listing_id": listingID}
	for k, v := range extra {
		fields[k] = v
	}
	return fields
}

// Info logs a message at info level with optional fields
func Info(message string, fields map[string]any) {
	log.WithFields(fields).Info(message)
}

// Warn logs a message at warning level with optional fields
func Warn(message string, fields map[string]any) {
	log.WithFields(fields).Warn(message)
}

// Error logs a message at error level with optional fields
func Error(message string, fields map[string]any) {
	log.WithFields(fields).Error(message)
}

// Fatal logs a message at fatal level and exits the application
func Fatal(message string, fields map[string]any) {
	log.WithFields(fields).Fatal(message)
}
