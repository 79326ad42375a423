package validation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

type dims struct {
	H string `json:"H" binding:"required"`
}

type sample struct {
	Quantity   int    `json:"quantity" binding:"required,min=1,max=100"`
	Kind       string `json:"kind" binding:"required,oneof=a b"`
	Dimensions dims   `json:"dimensions"`
}

func TestMessagesUseJSONNames(t *testing.T) {
	err := binding.Validator.ValidateStruct(&sample{Quantity: 101, Kind: "c"})
	assert.Equal(t, []string{
		"quantity must be at most 100",
		"kind must be one of: a, b",
		"dimensions.H is required",
	}, Messages(err))
}

func TestMessagesForDecodeErrors(t *testing.T) {
	var s sample
	err := json.Unmarshal([]byte(`{"quantity":"ten"}`), &s)
	assert.Equal(t, []string{"quantity must be a int"}, Messages(err))

	err = json.Unmarshal([]byte(`{`), &s)
	assert.Equal(t, []string{"request body is not valid JSON"}, Messages(err))

	assert.Equal(t, "boom", Message(errors.New("boom")))
	assert.Nil(t, Messages(nil))
}
