package videos

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/logysma/logysma-backend/internal/notifications"
	"github.com/logysma/logysma-backend/pkg/db/models"
	"github.com/logysma/logysma-backend/pkg/enums"
	pkgerrors "github.com/logysma/logysma-backend/pkg/errors"
)

type fakeRepository struct {
	videos      map[uuid.UUID]*models.Video
	likes       map[uuid.UUID]map[uuid.UUID]bool
	adjustments []int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		videos: map[uuid.UUID]*models.Video{},
		likes:  map[uuid.UUID]map[uuid.UUID]bool{},
	}
}

func (f *fakeRepository) Create(ctx context.Context, video *models.Video) error {
	video.ID = uuid.New()
	f.videos[video.ID] = video
	return nil
}

func (f *fakeRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	if video, ok := f.videos[id]; ok {
		return video, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) ListRecent(ctx context.Context, limit int) ([]models.Video, error) {
	return nil, nil
}

func (f *fakeRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Video, error) {
	return nil, nil
}

func (f *fakeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.videos, id)
	return nil
}

func (f *fakeRepository) AddLike(ctx context.Context, like *models.VideoLike) error {
	if f.likes[like.VideoID] == nil {
		f.likes[like.VideoID] = map[uuid.UUID]bool{}
	}
	f.likes[like.VideoID][like.UserID] = true
	return nil
}

func (f *fakeRepository) RemoveLike(ctx context.Context, videoID, userID uuid.UUID) (int64, error) {
	if f.likes[videoID][userID] {
		delete(f.likes[videoID], userID)
		return 1, nil
	}
	return 0, nil
}

func (f *fakeRepository) HasLiked(ctx context.Context, videoID, userID uuid.UUID) (bool, error) {
	return f.likes[videoID][userID], nil
}

func (f *fakeRepository) AdjustLikes(ctx context.Context, videoID uuid.UUID, delta int) error {
	f.adjustments = append(f.adjustments, delta)
	if video, ok := f.videos[videoID]; ok {
		video.Likes += delta
	}
	return nil
}

func (f *fakeRepository) IncrementViews(ctx context.Context, videoID uuid.UUID) error {
	if video, ok := f.videos[videoID]; ok {
		video.ViewsCount++
	}
	return nil
}

type fakeDispatcher struct {
	dispatched []notifications.DispatchParams
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, params notifications.DispatchParams) (*models.Notification, error) {
	f.dispatched = append(f.dispatched, params)
	return &models.Notification{}, nil
}

func (f *fakeDispatcher) DispatchAlertMatch(ctx context.Context, recipient models.User, property models.Property) (*models.Notification, error) {
	return &models.Notification{}, nil
}

type fakeUserSource struct{}

func (f *fakeUserSource) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return &models.User{ID: id, FirstName: "Awa"}, nil
}

func setup(t *testing.T) (Service, *fakeRepository, *fakeDispatcher) {
	t.Helper()
	repo := newFakeRepository()
	dispatcher := &fakeDispatcher{}
	svc, err := NewService(ServiceParams{Repo: repo, Users: &fakeUserSource{}, Dispatcher: dispatcher})
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}
	return svc, repo, dispatcher
}

func expectCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	var coded *pkgerrors.Error
	if !pkgerrors.As(err, &coded) || coded.Code() != code {
		t.Fatalf("expected code %s, got %v", code, err)
	}
}

func TestLikeOnceThenConflict(t *testing.T) {
	svc, repo, dispatcher := setup(t)
	owner := uuid.New()
	liker := uuid.New()
	video := &models.Video{UserID: owner, VideoURL: "https://cdn.example/clip.mp4"}
	if err := repo.Create(context.Background(), video); err != nil {
		t.Fatal(err)
	}

	if err := svc.Like(context.Background(), liker, video.ID); err != nil {
		t.Fatalf("unexpected like error: %v", err)
	}
	if video.Likes != 1 {
		t.Fatalf("expected counter 1, got %d", video.Likes)
	}
	if len(dispatcher.dispatched) != 1 || dispatcher.dispatched[0].Kind != enums.NotificationKindLike {
		t.Fatal("expected one like notification for the author")
	}
	if dispatcher.dispatched[0].UserID != owner {
		t.Fatal("expected the notification addressed to the author")
	}

	expectCode(t, svc.Like(context.Background(), liker, video.ID), pkgerrors.CodeConflict)
	if video.Likes != 1 {
		t.Fatalf("expected counter unchanged, got %d", video.Likes)
	}
}

func TestSelfLikeSkipsNotification(t *testing.T) {
	svc, repo, dispatcher := setup(t)
	owner := uuid.New()
	video := &models.Video{UserID: owner, VideoURL: "https://cdn.example/clip.mp4"}
	if err := repo.Create(context.Background(), video); err != nil {
		t.Fatal(err)
	}

	if err := svc.Like(context.Background(), owner, video.ID); err != nil {
		t.Fatalf("unexpected like error: %v", err)
	}
	if len(dispatcher.dispatched) != 0 {
		t.Fatal("expected no notification for a self-like")
	}
}

func TestUnlikeIsIdempotent(t *testing.T) {
	svc, repo, _ := setup(t)
	owner := uuid.New()
	liker := uuid.New()
	video := &models.Video{UserID: owner, VideoURL: "https://cdn.example/clip.mp4"}
	if err := repo.Create(context.Background(), video); err != nil {
		t.Fatal(err)
	}
	if err := svc.Like(context.Background(), liker, video.ID); err != nil {
		t.Fatal(err)
	}

	if err := svc.Unlike(context.Background(), liker, video.ID); err != nil {
		t.Fatalf("unexpected unlike error: %v", err)
	}
	if video.Likes != 0 {
		t.Fatalf("expected counter back to 0, got %d", video.Likes)
	}

	// absent like stays a no-op: counter untouched
	if err := svc.Unlike(context.Background(), liker, video.ID); err != nil {
		t.Fatalf("unexpected repeat unlike error: %v", err)
	}
	if len(repo.adjustments) != 2 {
		t.Fatalf("expected two counter adjustments, got %d", len(repo.adjustments))
	}
}

func TestLikeMissingVideo(t *testing.T) {
	svc, _, _ := setup(t)
	expectCode(t, svc.Like(context.Background(), uuid.New(), uuid.New()), pkgerrors.CodeNotFound)
}

func TestPublishValidation(t *testing.T) {
	svc, _, _ := setup(t)
	_, err := svc.Publish(context.Background(), PublishParams{UserID: uuid.New()})
	expectCode(t, err, pkgerrors.CodeValidation)
}
