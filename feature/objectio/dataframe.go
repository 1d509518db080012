package objectio

import (
	"context"

	"objectio/core/format"
	"objectio/core/frame"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// ReadDataFrame reads a table. inputFormat overrides the format inferred from the key's
// suffix; either way it must be one of parquet, txt, csv or tsv.
// A missing object is reported before the format is checked.
func (s *Service) ReadDataFrame(ctx context.Context, bucket, key, inputFormat string) (*frame.Frame, error) {
	b, err := s.resolveBucket(bucket)
	if err != nil {
		return nil, err
	}

	exists, err := s.Exists(ctx, b, key)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, notFound(msgFileMissing)
	}

	f, err := format.Resolve(key, inputFormat, format.Input)
	if err != nil {
		return nil, err
	}

	data, err := s.fetch(ctx, b, key)
	if err != nil {
		return nil, err
	}

	df, err := decodeFrame(data, f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s object %q", f, key)
	}

	s.logger.Debug("Read dataframe",
		zap.String("bucket", b),
		zap.String("key", key),
		zap.Stringer("format", f),
		zap.Int("rows", df.NumRows()),
		zap.Int("columns", len(df.Columns)),
	)
	return df, nil
}

// WriteDataFrame writes a table. outputFormat overrides the format inferred from the
// key's suffix; either way it must be one of parquet, txt, csv or tsv.
func (s *Service) WriteDataFrame(ctx context.Context, df *frame.Frame, bucket, key, outputFormat string) error {
	f, err := format.Resolve(key, outputFormat, format.Output)
	if err != nil {
		return err
	}
	if df == nil {
		return errors.New("dataframe is nil")
	}

	data, err := encodeFrame(df, f)
	if err != nil {
		return errors.Wrapf(err, "failed to encode dataframe as %s", f)
	}

	if err := s.WriteBytes(ctx, bucket, key, data); err != nil {
		return err
	}

	s.logger.Debug("Wrote dataframe",
		zap.String("key", key),
		zap.Stringer("format", f),
		zap.Int("rows", df.NumRows()),
	)
	return nil
}

func decodeFrame(data []byte, f format.Format) (*frame.Frame, error) {
	switch f {
	case format.Parquet:
		return frame.DecodeParquet(data)
	case format.CSV, format.TSV, format.TXT:
		return frame.DecodeDelimited(data, f.Delimiter())
	default:
		return nil, errors.Newf("no dataframe codec for %s", f)
	}
}

func encodeFrame(df *frame.Frame, f format.Format) ([]byte, error) {
	switch f {
	case format.Parquet:
		return frame.EncodeParquet(df)
	case format.CSV, format.TSV, format.TXT:
		return frame.EncodeDelimited(df, f.Delimiter())
	default:
		return nil, errors.Newf("no dataframe codec for %s", f)
	}
}
