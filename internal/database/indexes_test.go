package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestWorkflowIndexModels(t *testing.T) {
	models := workflowIndexModels()
	require.NotEmpty(t, models)

	t.Run("✅ unique partial index chỉ áp dụng cho workflow có primaryItemId", func(t *testing.T) {
		opts := models[0].Options
		require.NotNil(t, opts)
		require.NotNil(t, opts.Unique)
		assert.True(t, *opts.Unique)

		filter, ok := opts.PartialFilterExpression.(bson.M)
		require.True(t, ok)

		// Không có $exists thì mọi daily_suggestion workflow (không set
		// primaryItemId) đụng nhau trên null key dù thuộc user khác nhau
		assert.Equal(t, bson.M{"$exists": true}, filter["primaryItemId"])
		assert.Equal(t, bson.M{"$in": []string{"pending", "editing"}}, filter["status"])
	})

	t.Run("✅ có index cho inbound lookup và cleanup sweep", func(t *testing.T) {
		keys := make([]bson.D, 0, len(models))
		for _, m := range models {
			keys = append(keys, m.Keys.(bson.D))
		}
		assert.Contains(t, keys, bson.D{{Key: "recipientPhone", Value: 1}, {Key: "status", Value: 1}, {Key: "createdAt", Value: -1}})
		assert.Contains(t, keys, bson.D{{Key: "status", Value: 1}, {Key: "expiresAt", Value: 1}})
	})
}
