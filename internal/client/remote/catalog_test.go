package remote

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/pokedex/internal/common"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchPage_Success(t *testing.T) {
	c := NewCatalog("http://catalog.local")
	httpmock.ActivateNonDefault(c.httpClient)
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", "http://catalog.local/pokemon?page=1&limit=2",
		httpmock.NewStringResponder(200, `[
			{"id":1,"name":{"english":"Bulbasaur"},"type":["Grass","Poison"],"image":{"remote":"http://img/1.png"}},
			{"id":2,"name":{"english":"Ivysaur"},"type":["Grass","Poison"],"image":{"remote":"http://img/2.png"}}
		]`))

	batch, err := c.FetchPage(context.Background(), 1, 2)
	require.NoError(t, err)

	require.Len(t, batch, 2)
	assert.Equal(t, int64(1), batch[0].ID)
	assert.Equal(t, "Bulbasaur", batch[0].Name.English)
	assert.Equal(t, "http://img/2.png", batch[1].Image.Remote)
}

func TestFetchPage_ShortPagePassesThrough(t *testing.T) {
	c := NewCatalog("http://catalog.local")
	httpmock.ActivateNonDefault(c.httpClient)
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", "http://catalog.local/pokemon?page=9&limit=10",
		httpmock.NewStringResponder(200, `[{"id":81,"name":{"english":"Magnemite"},"image":{"remote":"http://img/81.png"}}]`))

	batch, err := c.FetchPage(context.Background(), 9, 10)
	require.NoError(t, err)
	assert.Len(t, batch, 1)
}

func TestFetchPage_NonSuccessStatus(t *testing.T) {
	c := NewCatalog("http://catalog.local")
	httpmock.ActivateNonDefault(c.httpClient)
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", "http://catalog.local/pokemon?page=1&limit=10",
		httpmock.NewStringResponder(502, "bad gateway"))

	_, err := c.FetchPage(context.Background(), 1, 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrorNetwork))
}

func TestFetchPage_NonArrayBody(t *testing.T) {
	c := NewCatalog("http://catalog.local")
	httpmock.ActivateNonDefault(c.httpClient)
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", "http://catalog.local/pokemon?page=1&limit=10",
		httpmock.NewStringResponder(200, `{"error":"nope"}`))

	_, err := c.FetchPage(context.Background(), 1, 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrorNetwork))
}

func TestFetchPage_InvalidRecordInBatch(t *testing.T) {
	c := NewCatalog("http://catalog.local")
	httpmock.ActivateNonDefault(c.httpClient)
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", "http://catalog.local/pokemon?page=1&limit=10",
		httpmock.NewStringResponder(200, `[{"id":0,"name":{}}]`))

	_, err := c.FetchPage(context.Background(), 1, 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrorNetwork))
}
