package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
)

// Unix values above this are taken as milliseconds
const unixMillisCutoff = 1e12

// UnmarshalJSON accepts timestamps in whatever shape fetchers emit them:
// RFC 3339, platform date strings such as "Wed Oct 10 20:19:24 +0000 2018",
// or unix seconds and milliseconds
func (t *TextItem) UnmarshalJSON(data []byte) error {
	type alias TextItem
	aux := struct {
		*alias
		Timestamp json.RawMessage `json:"timestamp,omitempty"`
	}{alias: (*alias)(t)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	ts, err := parseTimestamp(aux.Timestamp)
	if err != nil {
		return fmt.Errorf("%w: item %s: %v", ErrInvalidItem, t.ID, err)
	}
	t.Timestamp = ts
	return nil
}

func parseTimestamp(raw json.RawMessage) (*time.Time, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		if s == "" {
			return nil, nil
		}
		parsed, err := dateparse.ParseIn(s, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("unrecognized timestamp %q", s)
		}
		return &parsed, nil
	}

	n, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return nil, fmt.Errorf("unrecognized timestamp %s", raw)
	}
	var parsed time.Time
	if n >= unixMillisCutoff {
		parsed = time.UnixMilli(int64(n)).UTC()
	} else {
		parsed = time.Unix(int64(n), 0).UTC()
	}
	return &parsed, nil
}

// UnmarshalJSON keeps the embedded item's timestamp handling without
// dropping the analysis fields
func (s *ScoredItem) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &s.TextItem); err != nil {
		return err
	}

	var scores struct {
		SentimentScore    float64           `json:"sentiment_score"`
		SentimentCategory SentimentCategory `json:"sentiment_category"`
	}
	if err := json.Unmarshal(data, &scores); err != nil {
		return err
	}
	s.SentimentScore = scores.SentimentScore
	s.SentimentCategory = scores.SentimentCategory
	return nil
}
