package service

import (
	"testing"

	"github.com/lshigami/classquiz/internal/apperror"
	"github.com/lshigami/classquiz/internal/dto"
	"github.com/lshigami/classquiz/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedAndReplies(t *testing.T) {
	f := newFixture(t)
	svc := NewFeedService(repository.NewFeedRepository(f.db), f.files)

	feed, err := svc.Create(f.teacherP, dto.FeedRequest{Message: "Besok ulangan"}, pngFile(t, "image"))
	require.NoError(t, err)
	require.NotNil(t, feed.Image)
	require.NotNil(t, feed.User)
	assert.Equal(t, f.teacher.Name, feed.User.Name)
	assert.Empty(t, feed.Replies)

	reply, err := svc.Reply(f.studentP, feed.ID, dto.FeedReplyRequest{Message: "Siap bu"})
	require.NoError(t, err)
	assert.Equal(t, feed.ID, reply.FeedID)
	assert.Equal(t, f.student.Name, reply.User.Name)

	list, err := svc.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Len(t, list[0].Replies, 1)

	_, err = svc.Reply(f.studentP, 424242, dto.FeedReplyRequest{Message: "hello?"})
	assertKind(t, err, apperror.KindNotFound)
}
