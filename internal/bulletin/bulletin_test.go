package bulletin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "alias", raw: "default", want: DefaultURL},
		{name: "alias any case", raw: " DEFAULT ", want: DefaultURL},
		{name: "https", raw: "https://www.imprentanacional.go.cr/boletin/?date=15/01/2025", want: "https://www.imprentanacional.go.cr/boletin/?date=15/01/2025"},
		{name: "http", raw: "http://example.com/b", want: "http://example.com/b"},
		{name: "no scheme", raw: "www.imprentanacional.go.cr/boletin", wantErr: true},
		{name: "file", raw: "file:///etc/passwd", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveURL(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidURL)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewFetcherDefaults(t *testing.T) {
	f := NewFetcher(nil)
	assert.Positive(t, f.Timeout)
	assert.Positive(t, f.Settle)
}
