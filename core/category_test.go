package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCategory_JSON(t *testing.T) {
	for _, c := range []Category{CategoryNone, CategoryStart, CategoryGateway, CategoryTask, CategoryEnd} {
		b, err := json.Marshal(c)
		require.NoError(t, err)

		var got Category
		require.NoError(t, json.Unmarshal(b, &got))
		require.Equal(t, c, got)
	}
}

func TestCategory_NoneIsNull(t *testing.T) {
	b, err := json.Marshal(CategoryNone)
	require.NoError(t, err)
	require.Equal(t, "null", string(b))
}

func TestParseCategory_Unknown(t *testing.T) {
	_, err := ParseCategory("middle")
	require.Error(t, err)
}
