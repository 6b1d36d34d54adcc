package http

import (
	"errors"
	"testing"

	"booklend/internal/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testStruct struct {
	ID     string   `json:"id" validate:"required"`
	Tags   []string `json:"tags" validate:"required,min=1"`
	Rating int      `json:"rating" validate:"rating"`
}

func TestValidateStruct_ValidInput(t *testing.T) {
	assert.NoError(t, ValidateStruct(testStruct{ID: "x", Tags: []string{"a"}, Rating: 4}))
}

func TestValidateStruct_Messages(t *testing.T) {
	testCases := []struct {
		name string
		in   testStruct
		want string
	}{
		{"missing id uses json name", testStruct{Tags: []string{"a"}, Rating: 1}, "id is required"},
		{"nil array", testStruct{ID: "x", Rating: 1}, "tags is required"},
		{"empty array", testStruct{ID: "x", Tags: []string{}, Rating: 1}, "tags is required"},
		{"rating too low", testStruct{ID: "x", Tags: []string{"a"}, Rating: 0}, "rating must be between 1 and 5"},
		{"rating too high", testStruct{ID: "x", Tags: []string{"a"}, Rating: 6}, "rating must be between 1 and 5"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateStruct(tc.in)
			require.Error(t, err)
			assert.Equal(t, tc.want, err.Error())
			assert.Equal(t, apperror.KindInvalid, apperror.KindOf(err))
		})
	}
}

func TestValidateStruct_RatingBounds(t *testing.T) {
	for rating := 1; rating <= 5; rating++ {
		assert.NoError(t, ValidateStruct(testStruct{ID: "x", Tags: []string{"a"}, Rating: rating}))
	}
}

func TestNewRequest_ActionNamesMatch(t *testing.T) {
	assert.Len(t, newRequest, 18)
	for name, factory := range newRequest {
		assert.Equal(t, name, factory().action())
	}
}

func TestDecodeRequest(t *testing.T) {
	req, err := decodeRequest([]byte(`{"action":"borrowBook","bookId":"b1","borrower":"spoofed@example.com"}`))
	require.NoError(t, err)
	assert.Equal(t, &borrowBookRequest{BookID: "b1"}, req)

	req, err = decodeRequest([]byte(`{"action":"createOrUpdateReview","review":{"bookId":"b1","rating":5,"comment":"great"}}`))
	require.NoError(t, err)
	assert.Equal(t, reviewPayload{BookID: "b1", Rating: 5, Comment: "great"}, *req.(*createOrUpdateReviewRequest).Review)

	_, err = decodeRequest([]byte(`{"action":"nope"}`))
	assert.True(t, errors.Is(err, errUnknownAction))
	assert.EqualError(t, err, "unknown action: nope")

	_, err = decodeRequest([]byte(`{"action":"createOrUpdateReview","review":{"bookId":"b1","rating":"five"}}`))
	assert.EqualError(t, err, "review.rating is required")
}
