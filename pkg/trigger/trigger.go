package trigger

import (
	"encoding/json"
	"net/url"

	"github.com/aws/aws-lambda-go/events"
)

// Object identifies the document a notification refers to.
type Object struct {
	Bucket  string
	Key     string
	Version string
}

// Extract returns the object of the first record, or nil if the event carries none.
func Extract(e events.S3Event) *Object {
	if len(e.Records) == 0 {
		return nil
	}

	record := e.Records[0].S3

	return &Object{
		Bucket:  record.Bucket.Name,
		Key:     decodeKey(record.Object),
		Version: record.Object.VersionID,
	}
}

func Parse(data []byte) (events.S3Event, error) {
	var e events.S3Event

	if err := json.Unmarshal(data, &e); err != nil {
		return events.S3Event{}, err
	}

	return e, nil
}

func decodeKey(o events.S3Object) string {
	if o.URLDecodedKey != "" {
		return o.URLDecodedKey
	}

	if key, err := url.QueryUnescape(o.Key); err == nil {
		return key
	}

	return o.Key
}
