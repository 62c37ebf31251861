package aggregate

import (
	"sync"
	"time"
)

// CallRecord is one entry in the aggregate's audit trail. The trail is
// a first-class output: the consuming surface renders it on its debug
// tab, so absorbed failures land here too, not just in the logs.
type CallRecord struct {
	Endpoint  string `json:"endpoint"`
	AppID     int    `json:"appId,omitempty"`
	Timestamp string `json:"timestamp"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	Response  any    `json:"response,omitempty"`
}

// callLog collects CallRecords from concurrent fetches in completion
// order.
type callLog struct {
	mu      sync.Mutex
	records []CallRecord
}

func (l *callLog) record(endpoint string, appID int, response any, err error) {
	rec := CallRecord{
		Endpoint:  endpoint,
		AppID:     appID,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Status:    "success",
	}
	if err != nil {
		rec.Status = "error"
		rec.Error = err.Error()
	} else {
		rec.Response = response
	}

	l.mu.Lock()
	l.records = append(l.records, rec)
	l.mu.Unlock()
}

func (l *callLog) all() []CallRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]CallRecord(nil), l.records...)
}
