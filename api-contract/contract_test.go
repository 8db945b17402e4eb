package apicontract_test

import (
	"context"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apicontract "github.com/saleslt/catalog/api-contract"
)

func TestEmbeddedSpec(t *testing.T) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(apicontract.GetSpecBytes())
	require.NoError(t, err)

	t.Run("Should be a valid OpenAPI document", func(t *testing.T) {
		require.NoError(t, doc.Validate(context.Background()))
	})

	t.Run("Should document every resource", func(t *testing.T) {
		for _, path := range []string{
			"/products",
			"/products/{productID}",
			"/categories",
			"/categories/{categoryID}",
			"/models",
			"/models/{modelID}",
			"/models/{modelID}/descriptions",
			"/descriptions",
			"/descriptions/{descriptionID}",
		} {
			assert.NotNil(t, doc.Paths.Find(path), "missing path %s", path)
		}
	})

	t.Run("Should keep thumbnail bytes out of read schemas", func(t *testing.T) {
		product := doc.Components.Schemas["Product"]
		require.NotNil(t, product)
		_, ok := product.Value.Properties["thumbnail_photo"]
		assert.False(t, ok, "thumbnail_photo must not appear on read schema")
	})
}
