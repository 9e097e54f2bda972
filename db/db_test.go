package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestExtractDBName(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"mongodb://localhost:27017/interviews", "interviews"},
		{"mongodb+srv://u:p@cluster.example.net/prep?retryWrites=true", "prep"},
		{"mongodb://localhost:27017/", "prepwise"},
		{"mongodb://localhost:27017", "prepwise"},
		{"://bad uri", "prepwise"},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			assert.Equal(t, tt.want, extractDBName(tt.uri))
		})
	}
}

func TestLatestFilterExcludesCurrentUser(t *testing.T) {
	f := latestFilter("u1")
	assert.Equal(t, true, f["finalized"])
	assert.Equal(t, bson.M{"$ne": "u1"}, f["userId"])
}

func TestUserFilter(t *testing.T) {
	assert.Equal(t, bson.M{"userId": "u1"}, userFilter("u1", false))
	assert.Equal(t, bson.M{"userId": "u1", "isCustom": true}, userFilter("u1", true))
}

func TestLatestFindOptionsHidesSourceTexts(t *testing.T) {
	opts := latestFindOptions(20)
	assert.Equal(t, bson.M{"resume": 0, "jobDescription": 0}, opts.Projection)
	assert.Equal(t, int64(20), *opts.Limit)
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, opts.Sort)
}
