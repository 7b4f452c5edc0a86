package deck

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardValues(t *testing.T) {
	// Every rank maps to a defined comparison value, 2..14 Ace high
	expected := map[Rank]int{
		Two: 2, Three: 3, Four: 4, Five: 5, Six: 6, Seven: 7, Eight: 8,
		Nine: 9, Ten: 10, Jack: 11, Queen: 12, King: 13, Ace: 14,
	}

	for rank, value := range expected {
		card := NewCard(Spades, rank)
		assert.Equal(t, value, card.Value(), "rank %s", rank)
	}
}

func TestCardJSON(t *testing.T) {
	card := NewCard(Hearts, Ace)

	data, err := json.Marshal(card)
	require.NoError(t, err)
	assert.JSONEq(t, `{"suit":"hearts","rank":"A"}`, string(data))

	var decoded Card
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, card, decoded)
}

func TestCardJSONUnknown(t *testing.T) {
	var card Card
	assert.Error(t, json.Unmarshal([]byte(`{"suit":"stars","rank":"A"}`), &card))
	assert.Error(t, json.Unmarshal([]byte(`{"suit":"hearts","rank":"1"}`), &card))
}

func TestRankStrings(t *testing.T) {
	assert.Equal(t, "2", Two.String())
	assert.Equal(t, "10", Ten.String())
	assert.Equal(t, "J", Jack.String())
	assert.Equal(t, "A", Ace.String())
}
