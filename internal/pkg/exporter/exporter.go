package exporter

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"leadengine/internal/pkg/logger"
	"leadengine/internal/pkg/metrics"
	"leadengine/internal/pkg/models"
)

// Buffers scored leads until a threshold is reached, then ships them to a
// bulk NDJSON endpoint. Export is best effort; a failed flush is logged and
// counted, never surfaced to the scoring path.
type BulkExporter struct {
	mutex        sync.Mutex
	buffer       []models.CompanyRecord
	threshold    int
	flushChannel chan struct{}
	bulkURL      string
	indexName    string
}

// Creates a new BulkExporter.
func NewBulkExporter(threshold int, bulkURL, indexName string) *BulkExporter {
	if threshold <= 0 {
		threshold = 25
	}
	exporter := &BulkExporter{
		buffer:       make([]models.CompanyRecord, 0, threshold),
		threshold:    threshold,
		flushChannel: make(chan struct{}, 1),
		bulkURL:      bulkURL,
		indexName:    indexName,
	}
	go exporter.startFlushing()
	return exporter
}

// Runs in a goroutine and flushes when signaled.
func (exporter *BulkExporter) startFlushing() {
	for range exporter.flushChannel {
		exporter.flush()
	}
}

// Adds a scored lead to the buffer and signals flush if threshold is met.
func (exporter *BulkExporter) Add(record models.CompanyRecord) {
	exporter.mutex.Lock()
	defer exporter.mutex.Unlock()

	exporter.buffer = append(exporter.buffer, record)
	if len(exporter.buffer) >= exporter.threshold {
		select {
		case exporter.flushChannel <- struct{}{}:
		default:
			// flush already signaled
		}
	}
}

// Forces out whatever is buffered, regardless of threshold.
func (exporter *BulkExporter) Flush() {
	select {
	case exporter.flushChannel <- struct{}{}:
	default:
	}
}

// Builds the NDJSON payload and hands it off for sending.
func (exporter *BulkExporter) flush() {
	exporter.mutex.Lock()
	if len(exporter.buffer) == 0 {
		exporter.mutex.Unlock()
		return
	}
	records := exporter.buffer
	exporter.buffer = make([]models.CompanyRecord, 0, exporter.threshold)
	exporter.mutex.Unlock()

	var ndjsonPayload bytes.Buffer
	for _, record := range records {
		meta := map[string]map[string]string{
			"index": {
				"_index": exporter.indexName,
				"_id":    recordID(record),
			},
		}
		metaLine, err := json.Marshal(meta)
		if err != nil {
			logger.Log.Error("Failed to marshal meta line", zap.Error(err))
			continue
		}
		ndjsonPayload.Write(metaLine)
		ndjsonPayload.WriteByte('\n')

		docLine, err := json.Marshal(record)
		if err != nil {
			logger.Log.Error("Failed to marshal lead record", zap.Error(err))
			continue
		}
		ndjsonPayload.Write(docLine)
		ndjsonPayload.WriteByte('\n')
	}

	logger.Log.Info("Flushing scored leads", zap.Int("count", len(records)))
	metrics.ExportFlushes.Inc()

	go exporter.sendBulkRequest(ndjsonPayload.Bytes())
}

// Sends the bulk payload to the configured endpoint.
func (exporter *BulkExporter) sendBulkRequest(payload []byte) {
	request, err := http.NewRequestWithContext(context.Background(), "POST", exporter.bulkURL, bytes.NewReader(payload))
	if err != nil {
		logger.Log.Error("Failed to create bulk request", zap.Error(err))
		metrics.ExportFailures.Inc()
		return
	}
	request.Header.Set("Content-Type", "application/x-ndjson")

	response, err := http.DefaultClient.Do(request)
	if err != nil {
		logger.Log.Error("Bulk export request failed", zap.Error(err))
		metrics.ExportFailures.Inc()
		return
	}
	defer response.Body.Close()

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		logger.Log.Info("Bulk export successful", zap.Int("status_code", response.StatusCode))
	} else {
		logger.Log.Warn("Bulk export failed", zap.Int("status_code", response.StatusCode))
		metrics.ExportFailures.Inc()
	}
}

// Doc IDs come from the website URL so re-exports overwrite instead of
// duplicating; companies without a URL fall back to their name.
func recordID(record models.CompanyRecord) string {
	key := record.WebsiteURL
	if key == "" {
		key = record.CompanyName
	}
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:16])
}
