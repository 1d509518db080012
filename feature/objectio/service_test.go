package objectio

import (
	"context"
	"io"
	"strings"
	"testing"

	"objectio/core/frame"
	"objectio/core/ndarray"
	"objectio/core/storage"
	"objectio/core/storage/mocks"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testBucket = "test_bucket"

var errTransport = errors.New("connection reset by peer")

func listing(keys ...string) <-chan storage.ObjectInfo {
	ch := make(chan storage.ObjectInfo, len(keys))
	for _, key := range keys {
		ch <- storage.ObjectInfo{Key: key}
	}
	close(ch)
	return ch
}

func proteins(t *testing.T) *frame.Frame {
	t.Helper()

	id, err := frame.NewColumn("protein_id", frame.String, "P02768", "P68871", "Q9Y6K9")
	require.NoError(t, err)
	length, err := frame.NewColumn("length", frame.Int64, 609, 147, nil)
	require.NoError(t, err)
	coverage, err := frame.NewColumn("coverage", frame.Float64, 0.42, 1.0, 0.0)
	require.NoError(t, err)
	reviewed, err := frame.NewColumn("reviewed", frame.Bool, true, false, true)
	require.NoError(t, err)

	f, err := frame.New(id, length, coverage, reviewed)
	require.NoError(t, err)
	return f
}

func TestService_Exists(t *testing.T) {
	ctx := context.Background()

	t.Run("Present", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("StatObject", mock.Anything, testBucket, "results.csv").Return(storage.ObjectInfo{Size: 628}, nil)
		svc := NewService(mockClient, testBucket, zap.NewNop())

		ok, err := svc.Exists(ctx, testBucket, "results.csv")
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Absent", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("StatObject", mock.Anything, testBucket, "random_file.csv").Return(nil, storage.ErrObjectNotFound)
		svc := NewService(mockClient, testBucket, zap.NewNop())

		ok, err := svc.Exists(ctx, testBucket, "random_file.csv")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("TransportError", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("StatObject", mock.Anything, testBucket, "results.csv").Return(nil, errTransport)
		svc := NewService(mockClient, testBucket, zap.NewNop())

		_, err := svc.Exists(ctx, testBucket, "results.csv")
		assert.Equal(t, errTransport, err)
	})
}

func TestService_ReadBytes(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("GetObject", mock.Anything, testBucket, "missing.csv").Return(nil, storage.ErrObjectNotFound)
		svc := NewService(mockClient, testBucket, zap.NewNop())

		_, err := svc.ReadBytes(ctx, testBucket, "missing.csv")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotFound))
		assert.Equal(t, "File doesn't exist.", err.Error())
	})

	t.Run("Content", func(t *testing.T) {
		mockClient := new(mocks.Client)
		body := io.NopCloser(strings.NewReader("a,b\n1,2\n"))
		mockClient.On("GetObject", mock.Anything, testBucket, "x.csv").Return(body, nil)
		svc := NewService(mockClient, testBucket, zap.NewNop())

		data, err := svc.ReadBytes(ctx, testBucket, "x.csv")
		require.NoError(t, err)
		assert.Equal(t, "a,b\n1,2\n", string(data))
	})

	t.Run("TransportError", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("GetObject", mock.Anything, testBucket, "x.csv").Return(nil, errTransport)
		svc := NewService(mockClient, testBucket, zap.NewNop())

		_, err := svc.ReadBytes(ctx, testBucket, "x.csv")
		assert.Equal(t, errTransport, err)
	})
}

func TestService_Size(t *testing.T) {
	ctx := context.Background()
	mockClient := new(mocks.Client)
	mockClient.On("StatObject", mock.Anything, testBucket, "results.csv").Return(storage.ObjectInfo{Key: "results.csv", Size: 628}, nil)
	mockClient.On("StatObject", mock.Anything, testBucket, "random_file.csv").Return(nil, storage.ErrObjectNotFound)
	svc := NewService(mockClient, testBucket, zap.NewNop())

	size, err := svc.Size(ctx, testBucket, "results.csv", false)
	require.NoError(t, err)
	assert.Equal(t, "628B", size)

	size, err = svc.Size(ctx, testBucket, "results.csv", true)
	require.NoError(t, err)
	assert.Equal(t, "628", size)

	_, err = svc.Size(ctx, testBucket, "random_file.csv", false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "File doesn't exist. Couldn't retrieve file size.", err.Error())
}

func TestService_ListKeys(t *testing.T) {
	ctx := context.Background()
	keys := []string{
		"peptides_proteins_results.csv",
		"subcellular_locations.tsv",
		"peptides_proteins_results.parquet",
		"peptide_proteins.json",
		"zeros_array.npy",
		"proteins.txt",
	}

	t.Run("All", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("ListObjects", mock.Anything, testBucket, "").Return(listing(keys...))
		svc := NewService(mockClient, testBucket, zap.NewNop())

		got, err := svc.ListKeys(ctx, testBucket, "", "")
		require.NoError(t, err)
		assert.ElementsMatch(t, keys, got)
	})

	t.Run("CSVOnly", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("ListObjects", mock.Anything, testBucket, "").Return(listing(keys...))
		svc := NewService(mockClient, testBucket, zap.NewNop())

		got, err := svc.ListKeys(ctx, testBucket, "", "csv")
		require.NoError(t, err)
		assert.Equal(t, []string{"peptides_proteins_results.csv"}, got)
	})

	t.Run("DotAndCaseInsensitive", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("ListObjects", mock.Anything, testBucket, "runs/").Return(listing("runs/a.TSV", "runs/b.tsv", "runs/c.csv"))
		svc := NewService(mockClient, testBucket, zap.NewNop())

		got, err := svc.ListKeys(ctx, testBucket, "runs/", ".Tsv")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"runs/a.TSV", "runs/b.tsv"}, got)
	})

	t.Run("Empty", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("ListObjects", mock.Anything, testBucket, "none/").Return(listing())
		svc := NewService(mockClient, testBucket, zap.NewNop())

		got, err := svc.ListKeys(ctx, testBucket, "none/", "csv")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("ListingError", func(t *testing.T) {
		ch := make(chan storage.ObjectInfo, 2)
		ch <- storage.ObjectInfo{Key: "a.csv"}
		ch <- storage.ObjectInfo{Err: errTransport}
		close(ch)

		mockClient := new(mocks.Client)
		mockClient.On("ListObjects", mock.Anything, testBucket, "").Return((<-chan storage.ObjectInfo)(ch))
		svc := NewService(mockClient, testBucket, zap.NewNop())

		_, err := svc.ListKeys(ctx, testBucket, "", "")
		assert.Equal(t, errTransport, err)
	})
}

func TestService_ReadDataFrame_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("IncorrectFormat", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("StatObject", mock.Anything, testBucket, "peptides_proteins_results.parquet").Return(storage.ObjectInfo{Size: 10}, nil)
		svc := NewService(mockClient, testBucket, zap.NewNop())

		_, err := svc.ReadDataFrame(ctx, testBucket, "peptides_proteins_results.parquet", ".elib")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidFormat))
		assert.Equal(t, "Invalid (inferred) inputformat. Use one of: parquet, txt, csv, tsv.", err.Error())
		mockClient.AssertNotCalled(t, "GetObject", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("FileDoesntExist", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("StatObject", mock.Anything, testBucket, "random_file.elib").Return(nil, storage.ErrObjectNotFound)
		svc := NewService(mockClient, testBucket, zap.NewNop())

		_, err := svc.ReadDataFrame(ctx, testBucket, "random_file.elib", "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotFound))
		assert.Equal(t, "File doesn't exist.", err.Error())
	})

	t.Run("CorruptPayload", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("StatObject", mock.Anything, testBucket, "broken.parquet").Return(storage.ObjectInfo{Size: 4}, nil)
		mockClient.On("GetObject", mock.Anything, testBucket, "broken.parquet").Return(io.NopCloser(strings.NewReader("nope")), nil)
		svc := NewService(mockClient, testBucket, zap.NewNop())

		_, err := svc.ReadDataFrame(ctx, testBucket, "broken.parquet", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `failed to decode parquet object "broken.parquet"`)
	})
}

func TestService_WriteDataFrame_IncorrectFormat(t *testing.T) {
	mockClient := new(mocks.Client)
	svc := NewService(mockClient, testBucket, zap.NewNop())

	err := svc.WriteDataFrame(context.Background(), proteins(t), testBucket, "peptides_proteins_results.parquet", ".elib")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidFormat))
	assert.Equal(t, "Invalid (inferred) outputformat. Use one of: parquet, txt, csv, tsv.", err.Error())
	mockClient.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_DataFrameRoundTrip(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name   string
		key    string
		format string
	}{
		{"Parquet", "peptides_proteins_results.parquet", "parquet"},
		{"CSV", "peptides_proteins_results.csv", "csv"},
		{"TSV", "subcellular_locations.tsv", "tsv"},
		{"TXT", "proteins.txt", "txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(newMemStore(), testBucket, zap.NewNop())
			want := proteins(t)

			// format given
			require.NoError(t, svc.WriteDataFrame(ctx, want, testBucket, tt.key, tt.format))
			got, err := svc.ReadDataFrame(ctx, testBucket, tt.key, tt.format)
			require.NoError(t, err)
			assert.True(t, want.Equal(got), "got %+v", got)

			// format inferred from key
			require.NoError(t, svc.WriteDataFrame(ctx, want, testBucket, tt.key, ""))
			got, err = svc.ReadDataFrame(ctx, testBucket, tt.key, "")
			require.NoError(t, err)
			assert.True(t, want.Equal(got), "got %+v", got)
		})
	}
}

func TestService_TXTIsTabDelimited(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := NewService(store, testBucket, zap.NewNop())

	require.NoError(t, svc.WriteDataFrame(ctx, proteins(t), testBucket, "proteins.txt", ""))

	data, err := svc.ReadBytes(ctx, testBucket, "proteins.txt")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "protein_id\tlength\tcoverage\treviewed\n"))

	asTSV, err := svc.ReadDataFrame(ctx, testBucket, "proteins.txt", "tsv")
	require.NoError(t, err)
	assert.True(t, proteins(t).Equal(asTSV))
}

func TestService_JSON(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := NewService(store, testBucket, zap.NewNop())

	t.Run("RoundTrip", func(t *testing.T) {
		require.NoError(t, svc.WriteJSON(ctx, map[string]any{"a": 1}, testBucket, "x.json"))

		got, err := svc.ReadJSON(ctx, testBucket, "x.json")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": float64(1)}, got)
		assert.Equal(t, "application/json", store.types[testBucket+"/x.json"])
	})

	t.Run("Nested", func(t *testing.T) {
		want := map[string]any{
			"P02768": []any{"LVNEVTEFAK", "AEFAEVSK"},
			"meta":   map[string]any{"run": "2024-01", "reviewed": true, "score": 0.5},
		}
		require.NoError(t, svc.WriteJSON(ctx, want, testBucket, "peptide_proteins.json"))

		got, err := svc.ReadJSON(ctx, testBucket, "peptide_proteins.json")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("NotAnObject", func(t *testing.T) {
		require.NoError(t, svc.WriteBytes(ctx, testBucket, "list.json", []byte(`[1, 2]`)))
		_, err := svc.ReadJSON(ctx, testBucket, "list.json")
		assert.Error(t, err)

		require.NoError(t, svc.WriteBytes(ctx, testBucket, "null.json", []byte(`null`)))
		_, err = svc.ReadJSON(ctx, testBucket, "null.json")
		assert.Error(t, err)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := svc.ReadJSON(ctx, testBucket, "nope.json")
		assert.True(t, errors.Is(err, ErrNotFound))
	})
}

func TestService_NumpyArray(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemStore(), testBucket, zap.NewNop())

	want, err := ndarray.New(make([]float64, 12), 3, 4)
	require.NoError(t, err)

	require.NoError(t, svc.WriteNumpyArray(ctx, want, testBucket, "zeros_array.npy"))

	got, err := svc.ReadNumpyArray(ctx, testBucket, "zeros_array.npy")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	assert.Error(t, svc.WriteNumpyArray(ctx, nil, testBucket, "nil.npy"))
}

func TestService_Joblib(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemStore(), testBucket, zap.NewNop())

	type classifier struct {
		Features []string
		Weights  map[string]float64
	}
	want := classifier{
		Features: []string{"charge", "score"},
		Weights:  map[string]float64{"charge": 0.1, "score": 2.5},
	}

	require.NoError(t, svc.WriteJoblib(ctx, want, testBucket, "model.joblib"))

	var got classifier
	require.NoError(t, svc.ReadJoblib(ctx, testBucket, "model.joblib", &got))
	assert.Equal(t, want, got)

	err := svc.ReadJoblib(ctx, testBucket, "missing.joblib", &got)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestService_DefaultBucket(t *testing.T) {
	ctx := context.Background()

	t.Run("Fallback", func(t *testing.T) {
		store := newMemStore()
		svc := NewService(store, testBucket, nil)
		assert.Equal(t, testBucket, svc.DefaultBucket())

		require.NoError(t, svc.WriteBytes(ctx, "", "a.txt", []byte("x")))
		ok, err := svc.Exists(ctx, testBucket, "a.txt")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("ExplicitWins", func(t *testing.T) {
		store := newMemStore()
		svc := NewService(store, testBucket, nil)

		require.NoError(t, svc.WriteBytes(ctx, "other", "a.txt", []byte("x")))
		ok, err := svc.Exists(ctx, "", "a.txt")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("NoBucket", func(t *testing.T) {
		svc := NewService(newMemStore(), "", nil)

		_, err := svc.Exists(ctx, "", "a.txt")
		assert.True(t, errors.Is(err, ErrNoBucket))
		_, err = svc.ReadDataFrame(ctx, "", "a.csv", "")
		assert.True(t, errors.Is(err, ErrNoBucket))
		assert.True(t, errors.Is(svc.WriteDataFrame(ctx, proteins(t), "", "a.csv", ""), ErrNoBucket))
		_, err = svc.ListKeys(ctx, "", "", "")
		assert.True(t, errors.Is(err, ErrNoBucket))
	})
}
