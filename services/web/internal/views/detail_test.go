package views

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetail_UnmarshalJSON(t *testing.T) {
	cases := map[string]struct {
		body string
		want string
	}{
		"string":     {`{"detail":"bad creds"}`, "bad creds"},
		"null":       {`{"detail":null}`, ""},
		"missing":    {`{}`, ""},
		"list":       {`{"detail":[{"loc":["body","email"],"msg":"field required"},{"msg":"too short"}]}`, "field required; too short"},
		"empty list": {`{"detail":[]}`, "[]"},
		"object":     {`{"detail":{"code":7}}`, `{"code":7}`},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var resp LoginResponse
			require.NoError(t, json.Unmarshal([]byte(tc.body), &resp))
			assert.Equal(t, tc.want, resp.Detail.String())
		})
	}
}
