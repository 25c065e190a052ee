package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/agrolink/farmmarket/internal/models"
	"github.com/agrolink/farmmarket/internal/transport"
)

func seedBlogPost(t *testing.T, svc *BlogService) *models.BlogPost {
	t.Helper()

	post, err := svc.CreatePost(context.Background(), transport.CreateBlogPostRequest{
		Title:     "Crop rotation basics",
		Author:    "alice",
		FullDesc:  "Rotate your crops.",
		Thumbnail: "https://img.example.com/rotation.jpg",
	})
	require.NoError(t, err)
	return post
}

func TestVoteToggle(t *testing.T) {
	svc := &BlogService{Repo: newTestRepo(t)}
	post := seedBlogPost(t, svc)

	// Two identical votes toggle likes 0 -> 1 -> 0.
	view, err := svc.Vote(context.Background(), post.ID, "alice", models.VoteLike)
	require.NoError(t, err)
	require.Equal(t, 1, view.Likes)
	require.Equal(t, models.VoteLike, view.UserVote)

	view, err = svc.Vote(context.Background(), post.ID, "alice", models.VoteLike)
	require.NoError(t, err)
	require.Equal(t, 0, view.Likes)
	require.Empty(t, view.UserVote)
}

func TestVoteFlipsDirection(t *testing.T) {
	svc := &BlogService{Repo: newTestRepo(t)}
	post := seedBlogPost(t, svc)

	_, err := svc.Vote(context.Background(), post.ID, "alice", models.VoteLike)
	require.NoError(t, err)

	view, err := svc.Vote(context.Background(), post.ID, "alice", models.VoteDislike)
	require.NoError(t, err)
	require.Equal(t, 0, view.Likes)
	require.Equal(t, 1, view.Dislikes)
	require.Equal(t, models.VoteDislike, view.UserVote)

	view, err = svc.Vote(context.Background(), post.ID, "alice", models.VoteLike)
	require.NoError(t, err)
	require.Equal(t, 1, view.Likes)
	require.Equal(t, 0, view.Dislikes)
}

// Votes are per voter, not a single shared marker: one voter toggling
// off must not disturb another voter's count.
func TestVoteLedgerIsPerVoter(t *testing.T) {
	svc := &BlogService{Repo: newTestRepo(t)}
	post := seedBlogPost(t, svc)

	_, err := svc.Vote(context.Background(), post.ID, "alice", models.VoteLike)
	require.NoError(t, err)
	view, err := svc.Vote(context.Background(), post.ID, "bob", models.VoteLike)
	require.NoError(t, err)
	require.Equal(t, 2, view.Likes)

	view, err = svc.Vote(context.Background(), post.ID, "alice", models.VoteLike)
	require.NoError(t, err)
	require.Equal(t, 1, view.Likes)

	vote, err := svc.Repo.GetVote(context.Background(), post.ID, "bob")
	require.NoError(t, err)
	require.Equal(t, models.VoteLike, vote.Direction)
}

func TestVoteErrors(t *testing.T) {
	svc := &BlogService{Repo: newTestRepo(t)}
	post := seedBlogPost(t, svc)

	_, err := svc.Vote(context.Background(), 999, "alice", models.VoteLike)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Vote(context.Background(), post.ID, "", models.VoteLike)
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Vote(context.Background(), post.ID, "alice", "sideways")
	require.ErrorIs(t, err, ErrValidation)
}

func TestCreatePostValidation(t *testing.T) {
	svc := &BlogService{Repo: newTestRepo(t)}

	cases := []transport.CreateBlogPostRequest{
		{Author: "alice", FullDesc: "body"},
		{Title: "t", FullDesc: "body"},
		{Title: "t", Author: "alice"},
	}
	for _, req := range cases {
		_, err := svc.CreatePost(context.Background(), req)
		require.ErrorIs(t, err, ErrValidation)
	}
}

func TestListPostsNewestFirst(t *testing.T) {
	svc := &BlogService{Repo: newTestRepo(t)}

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 4; i++ {
		post := models.BlogPost{
			Title:     fmt.Sprintf("post %d", i),
			Author:    "alice",
			Body:      "body",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, svc.Repo.DB.Create(&post).Error)
	}

	posts, err := svc.ListPosts(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	require.Equal(t, "post 3", posts[0].Title)
}
