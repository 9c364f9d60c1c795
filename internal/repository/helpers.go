package repository

import (
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/medcorpus/internal/domain"
)

// EncodeTopic renders the stored form of a topic document. Encoding is
// deterministic, so equal records produce equal documents.
func EncodeTopic(rec *domain.TopicRecord) (string, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("encoding topic %s: %w", rec.ID, err)
	}
	return string(data), nil
}

func decodeTopic(doc string) (*domain.TopicRecord, error) {
	var rec domain.TopicRecord
	if err := json.Unmarshal([]byte(doc), &rec); err != nil {
		return nil, fmt.Errorf("decoding topic document: %w", err)
	}
	return &rec, nil
}
