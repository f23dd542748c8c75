package logger

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// ErrorCollector aggregates recent error/warn log entries in memory so the
// status endpoint can report what went wrong without scraping log output.
// Identical entries (same level, message, fields, caller) are deduplicated
// with a counter instead of growing the retained set.
type ErrorCollector struct {
	maxEntries int
	retention  time.Duration

	mutex  sync.RWMutex
	logMap map[string]*AggregatedLogEntry
}

type AggregatedLogEntry struct {
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
	Caller    string                 `json:"caller"`
	Count     int                    `json:"count"`
	FirstSeen time.Time              `json:"first_seen"`
	LastSeen  time.Time              `json:"last_seen"`
}

// NewErrorCollector creates a collector retaining at most maxEntries unique
// entries, each for at most retention since last seen.
func NewErrorCollector(maxEntries int, retention time.Duration) *ErrorCollector {
	if maxEntries <= 0 {
		maxEntries = 50
	}
	if retention <= 0 {
		retention = time.Hour
	}
	return &ErrorCollector{
		maxEntries: maxEntries,
		retention:  retention,
		logMap:     make(map[string]*AggregatedLogEntry),
	}
}

func (c *ErrorCollector) Add(level, message string, fields map[string]interface{}, caller string) {
	now := time.Now()
	key := c.generateKey(level, message, fields, caller)

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if entry, exists := c.logMap[key]; exists {
		entry.Count++
		entry.LastSeen = now
		return
	}

	if len(c.logMap) >= c.maxEntries {
		c.evictOldest()
	}

	c.logMap[key] = &AggregatedLogEntry{
		Level:     level,
		Message:   message,
		Fields:    fields,
		Caller:    caller,
		Count:     1,
		FirstSeen: now,
		LastSeen:  now,
	}
}

// Recent returns the retained entries, dropping anything past retention.
func (c *ErrorCollector) Recent() []AggregatedLogEntry {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	cutoff := time.Now().Add(-c.retention)
	entries := make([]AggregatedLogEntry, 0, len(c.logMap))
	for key, entry := range c.logMap {
		if entry.LastSeen.Before(cutoff) {
			delete(c.logMap, key)
			continue
		}
		entries = append(entries, *entry)
	}
	return entries
}

func (c *ErrorCollector) generateKey(level, message string, fields map[string]interface{}, caller string) string {
	// Create a consistent hash from level + message + fields + caller
	data := struct {
		Level   string                 `json:"level"`
		Message string                 `json:"message"`
		Fields  map[string]interface{} `json:"fields"`
		Caller  string                 `json:"caller"`
	}{
		Level:   level,
		Message: message,
		Fields:  fields,
		Caller:  caller,
	}

	jsonData, _ := json.Marshal(data)
	hash := sha256.Sum256(jsonData)
	return fmt.Sprintf("%x", hash)
}

func (c *ErrorCollector) evictOldest() {
	var oldestKey string
	var oldestTime time.Time
	for key, entry := range c.logMap {
		if oldestKey == "" || entry.LastSeen.Before(oldestTime) {
			oldestKey = key
			oldestTime = entry.LastSeen
		}
	}
	if oldestKey != "" {
		delete(c.logMap, oldestKey)
	}
}
