package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"cloudvid/video-api/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedVideo(t *testing.T, a *API, id, userID string, createdAt int64) {
	t.Helper()

	require.NoError(t, a.DB.Create(&model.Video{
		ID:             id,
		UserID:         userID,
		PublicID:       "asset_" + id,
		Title:          "clip " + id,
		OriginalSize:   "100",
		CompressedSize: "100",
		CreatedAt:      createdAt,
	}).Error)
}

func listVideos(t *testing.T, a *API, userID string) []model.Video {
	t.Helper()

	w := doJSON(t, a, http.MethodGet, "/api/videos", userID, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var entries []model.Video
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	return entries
}

func TestVideoList_RequiresIdentity(t *testing.T) {
	a := newTestAPI(t)

	w := doJSON(t, a, http.MethodGet, "/api/videos", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVideoList_EmptyIsAnArrayNotAnError(t *testing.T) {
	a := newTestAPI(t)

	w := doJSON(t, a, http.MethodGet, "/api/videos", "nobody_yet", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestVideoList_ScopedToOwner(t *testing.T) {
	a := newTestAPI(t)

	seedVideo(t, a, "v1", "alice", 1000)
	seedVideo(t, a, "v2", "bob", 2000)
	seedVideo(t, a, "v3", "alice", 3000)

	got := listVideos(t, a, "alice")
	require.Len(t, got, 2)
	for _, v := range got {
		assert.NotEqual(t, "v2", v.ID)
	}

	// Alice's latest upload leads her listing
	assert.Equal(t, "v3", got[0].ID)

	got = listVideos(t, a, "bob")
	require.Len(t, got, 1)
	assert.Equal(t, "v2", got[0].ID)
}

func TestVideoList_NewestFirst(t *testing.T) {
	a := newTestAPI(t)

	seedVideo(t, a, "oldest", "alice", 1000)
	seedVideo(t, a, "newest", "alice", 3000)
	seedVideo(t, a, "middle", "alice", 2000)

	got := listVideos(t, a, "alice")
	require.Len(t, got, 3)

	assert.Equal(t, "newest", got[0].ID)
	assert.Equal(t, "middle", got[1].ID)
	assert.Equal(t, "oldest", got[2].ID)
}
