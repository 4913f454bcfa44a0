package archive

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadNeDBLastLineWins(t *testing.T) {
	data := strings.Join([]string{
		`{"$$indexCreated":{"fieldName":"id","unique":true}}`,
		`{"id":"1","name":"Pepper","_id":"a"}`,
		`{"id":"2","name":"Basil","_id":"b"}`,
		`{"id":"1","name":"Chili","_id":"a"}`,
		``,
	}, "\n")

	docs, err := ReadNeDB(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "Chili", docs[0]["name"])
	assert.Equal(t, "Basil", docs[1]["name"])
}

func TestReadNeDBTombstones(t *testing.T) {
	data := strings.Join([]string{
		`{"id":"1","_id":"a"}`,
		`{"id":"2","_id":"b"}`,
		`{"$$deleted":true,"_id":"a"}`,
	}, "\n")

	docs, err := ReadNeDB(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "b", docs[0]["_id"])
}

func TestReadNeDBReinsertAfterDelete(t *testing.T) {
	data := strings.Join([]string{
		`{"id":"1","_id":"a","v":1}`,
		`{"$$deleted":true,"_id":"a"}`,
		`{"id":"1","_id":"a","v":2}`,
	}, "\n")

	docs, err := ReadNeDB(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, json.Number("2"), docs[0]["v"])
}

func TestReadNeDBConvertsDates(t *testing.T) {
	data := `{"id":"1","_id":"a","createdAt":{"$$date":1714555800000},"nested":[{"at":{"$$date":0}}]}`

	docs, err := ReadNeDB(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "2024-05-01T09:30:00Z", docs[0]["createdAt"])

	nested := docs[0]["nested"].([]any)
	assert.Equal(t, "1970-01-01T00:00:00Z", nested[0].(map[string]any)["at"])
}

func TestReadNeDBToleratesSomeCorruption(t *testing.T) {
	lines := make([]string, 0, 11)
	for i := 0; i < 10; i++ {
		lines = append(lines, `{"_id":"k`+string(rune('a'+i))+`"}`)
	}
	lines = append(lines, `{"_id":"broken`)

	docs, err := ReadNeDB(strings.NewReader(strings.Join(lines, "\n")))
	require.NoError(t, err)
	assert.Len(t, docs, 10)
}

func TestReadNeDBRejectsCorruptFile(t *testing.T) {
	data := strings.Join([]string{
		`{"_id":"a"}`,
		`not json`,
		`{"no":"id"}`,
	}, "\n")

	_, err := ReadNeDB(strings.NewReader(data))
	assert.Error(t, err)
}
