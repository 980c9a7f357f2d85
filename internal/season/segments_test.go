package season

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "mjstats/internal/errors"
)

func testConfig() Config {
	return Config{
		CumulativeKeywords: []string{"累", "合計", "Total", "total"},
		RankKeywords:       []string{"順位", "着順", "Rank", "rank"},
		Epoch:              time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC),
		ActivePlayers:      4,
	}
}

func TestClassify(t *testing.T) {
	cls := NewClassifier(testConfig())

	tests := []struct {
		label string
		want  LabelKind
	}{
		{"Alice", LabelPlayerCandidate},
		{"田中", LabelPlayerCandidate},
		{"", LabelIgnore},
		{"   ", LabelIgnore},
		{"Unnamed: 3", LabelIgnore},
		{"45000", LabelIgnore},
		{"12.5", LabelIgnore},
		{"1,200", LabelIgnore},
		{"AliceTotal", LabelCumulative},
		{"累計", LabelCumulative},
		{"合計", LabelCumulative},
		{"AliceRank", LabelRank},
		{"順位", LabelRank},
		{"着順", LabelRank},
		// Cumulative keywords win when a label matches both sets.
		{"Total Rank", LabelCumulative},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, cls.Classify(tt.label))
		})
	}
}

func TestDetectSegments(t *testing.T) {
	cls := NewClassifier(testConfig())

	header := []string{
		"Date",
		"Alice", "AliceTotal", "AliceRank",
		"Bob", "BobTotal", "BobRank",
		"Carol", "CarolRank",
		"Dave",
	}

	segments, err := DetectSegments(header, cls)
	require.NoError(t, err)
	require.Len(t, segments, 4)

	alice := segments[0]
	assert.Equal(t, "Alice", alice.Name)
	assert.Equal(t, 1, alice.Score.Index)
	require.NotNil(t, alice.Cumulative)
	assert.Equal(t, "AliceTotal", alice.Cumulative.Label)
	require.NotNil(t, alice.Rank)
	assert.Equal(t, "AliceRank", alice.Rank.Label)

	bob := segments[1]
	assert.Equal(t, "Bob", bob.Name)
	require.NotNil(t, bob.Cumulative)
	require.NotNil(t, bob.Rank)

	// Carol has a rank column but no cumulative column.
	carol := segments[2]
	assert.Equal(t, "Carol", carol.Name)
	assert.Nil(t, carol.Cumulative)
	require.NotNil(t, carol.Rank)
	assert.Equal(t, 8, carol.Rank.Index)

	// Dave has neither helper column.
	dave := segments[3]
	assert.Equal(t, "Dave", dave.Name)
	assert.Nil(t, dave.Cumulative)
	assert.Nil(t, dave.Rank)
}

func TestDetectSegmentsSkipsNoise(t *testing.T) {
	cls := NewClassifier(testConfig())

	header := []string{"Date", "", "Unnamed: 2", "Alice", "Bob", "順位"}
	segments, err := DetectSegments(header, cls)
	require.NoError(t, err)
	require.Len(t, segments, 2)

	assert.Equal(t, "Alice", segments[0].Name)
	assert.Nil(t, segments[0].Rank)

	// Bob claims the stray rank column that follows him.
	assert.Equal(t, "Bob", segments[1].Name)
	require.NotNil(t, segments[1].Rank)
}

func TestDetectSegmentsErrors(t *testing.T) {
	cls := NewClassifier(testConfig())

	t.Run("empty header", func(t *testing.T) {
		_, err := DetectSegments(nil, cls)
		require.Error(t, err)
		assert.True(t, apperrors.IsSchemaError(err))
	})

	t.Run("no player columns", func(t *testing.T) {
		_, err := DetectSegments([]string{"Date", "合計", "順位", ""}, cls)
		require.Error(t, err)
		assert.True(t, apperrors.IsSchemaError(err))
	})

	t.Run("date column alone", func(t *testing.T) {
		_, err := DetectSegments([]string{"Date"}, cls)
		require.Error(t, err)
		assert.True(t, apperrors.IsSchemaError(err))
	})
}
