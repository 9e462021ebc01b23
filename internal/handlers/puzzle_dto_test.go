package handlers

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/nonogram-server/internal/crawler"
	"github.com/vancomm/nonogram-server/internal/nonogram"
)

func TestParseSolveOptionsDTO(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		query       string
		wantKind    crawler.Kind
		wantRefresh bool
		wantErr     bool
	}{
		{name: "defaults", query: "", wantKind: crawler.Color},
		{name: "explicit color", query: "kind=color", wantKind: crawler.Color},
		{name: "black white", query: "kind=bw", wantKind: crawler.BlackWhite},
		{name: "refresh", query: "refresh=true", wantKind: crawler.Color, wantRefresh: true},
		{name: "unknown keys ignored", query: "kind=bw&foo=bar", wantKind: crawler.BlackWhite},
		{name: "bad kind", query: "kind=sepia", wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			query, err := url.ParseQuery(test.query)
			require.NoError(t, err)

			kind, refresh, err := ParseSolveOptionsDTO(query)
			if test.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.wantKind, kind)
			assert.Equal(t, test.wantRefresh, refresh)
		})
	}
}

func TestCellColors(t *testing.T) {
	t.Parallel()

	grid := [][]nonogram.Mask{
		{0b01, 0b10},
		{0b11, 0b100},
	}
	assert.Equal(t, [][]int{{0, 1}, {-1, 2}}, cellColors(grid))
}
