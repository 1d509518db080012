package objectio

import (
	"context"

	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ReadJSON reads a JSON object. Numbers decode as float64.
func (s *Service) ReadJSON(ctx context.Context, bucket, key string) (map[string]any, error) {
	data, err := s.ReadBytes(ctx, bucket, key)
	if err != nil {
		return nil, err
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, "failed to decode JSON object %q", key)
	}
	if m == nil {
		return nil, errors.Newf("JSON object %q is null", key)
	}
	return m, nil
}

// WriteJSON writes m as a UTF-8 JSON object. A nil map is written as {}.
func (s *Service) WriteJSON(ctx context.Context, m map[string]any, bucket, key string) error {
	if m == nil {
		m = map[string]any{}
	}
	data, err := json.Marshal(m)
	if err != nil {
		return errors.Wrap(err, "failed to encode JSON object")
	}
	return s.WriteBytes(ctx, bucket, key, data)
}
