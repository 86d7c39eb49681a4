package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ripple/internal/models"
)

func assertErrCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if appErr.Code != code {
		t.Fatalf("expected code %s, got %s (%v)", code, appErr.Code, err)
	}
}

type userRepoStub struct {
	getByIDFn            func(context.Context, uint) (*models.User, error)
	getByIDWithProfileFn func(context.Context, uint) (*models.User, error)
	getByEmailFn         func(context.Context, string) (*models.User, error)
	getByUsernameFn      func(context.Context, string) (*models.User, error)
	createFn             func(context.Context, *models.User) error
	updateFn             func(context.Context, *models.User) error
	deleteFn             func(context.Context, uint) error
	listFn               func(context.Context, int, int) ([]models.User, error)
	searchFn             func(context.Context, string, int, int) ([]models.User, error)
	getProfileFn         func(context.Context, uint) (*models.Profile, error)
	updateProfileFn      func(context.Context, *models.Profile) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByIDWithProfile(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDWithProfileFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) Search(ctx context.Context, q string, limit, offset int) ([]models.User, error) {
	return s.searchFn(ctx, q, limit, offset)
}
func (s *userRepoStub) GetProfileByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.getProfileFn(ctx, userID)
}
func (s *userRepoStub) UpdateProfile(ctx context.Context, profile *models.Profile) error {
	return s.updateProfileFn(ctx, profile)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:            func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByIDWithProfileFn: func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:         func(context.Context, string) (*models.User, error) { return nil, nil },
		getByUsernameFn:      func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:             func(context.Context, *models.User) error { return nil },
		updateFn:             func(context.Context, *models.User) error { return nil },
		deleteFn:             func(context.Context, uint) error { return nil },
		listFn:               func(context.Context, int, int) ([]models.User, error) { return nil, nil },
		searchFn:             func(context.Context, string, int, int) ([]models.User, error) { return nil, nil },
		getProfileFn:         func(context.Context, uint) (*models.Profile, error) { return &models.Profile{}, nil },
		updateProfileFn:      func(context.Context, *models.Profile) error { return nil },
	}
}

type friendRepoStub struct {
	createRequestFn     func(context.Context, *models.FriendRequest) error
	getRequestByIDFn    func(context.Context, uint) (*models.FriendRequest, error)
	getRequestBetweenFn func(context.Context, uint, uint) (*models.FriendRequest, error)
	deleteRequestFn     func(context.Context, uint) error
	incomingFn          func(context.Context, uint) ([]models.FriendRequest, error)
	outgoingFn          func(context.Context, uint) ([]models.FriendRequest, error)
	acceptRequestFn     func(context.Context, *models.FriendRequest) error
	areFriendsFn        func(context.Context, uint, uint) (bool, error)
	getFriendsFn        func(context.Context, uint) ([]models.User, error)
	removeEdgeFn        func(context.Context, uint, uint) error
}

func (s *friendRepoStub) CreateRequest(ctx context.Context, req *models.FriendRequest) error {
	return s.createRequestFn(ctx, req)
}
func (s *friendRepoStub) GetRequestByID(ctx context.Context, id uint) (*models.FriendRequest, error) {
	return s.getRequestByIDFn(ctx, id)
}
func (s *friendRepoStub) GetRequestBetween(ctx context.Context, fromID, toID uint) (*models.FriendRequest, error) {
	return s.getRequestBetweenFn(ctx, fromID, toID)
}
func (s *friendRepoStub) DeleteRequest(ctx context.Context, id uint) error {
	return s.deleteRequestFn(ctx, id)
}
func (s *friendRepoStub) IncomingRequests(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	return s.incomingFn(ctx, userID)
}
func (s *friendRepoStub) OutgoingRequests(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	return s.outgoingFn(ctx, userID)
}
func (s *friendRepoStub) AcceptRequest(ctx context.Context, req *models.FriendRequest) error {
	return s.acceptRequestFn(ctx, req)
}
func (s *friendRepoStub) AreFriends(ctx context.Context, userID1, userID2 uint) (bool, error) {
	return s.areFriendsFn(ctx, userID1, userID2)
}
func (s *friendRepoStub) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	return s.getFriendsFn(ctx, userID)
}
func (s *friendRepoStub) RemoveEdge(ctx context.Context, userID1, userID2 uint) error {
	return s.removeEdgeFn(ctx, userID1, userID2)
}

func noopFriendRepo() *friendRepoStub {
	return &friendRepoStub{
		createRequestFn:     func(context.Context, *models.FriendRequest) error { return nil },
		getRequestByIDFn:    func(context.Context, uint) (*models.FriendRequest, error) { return &models.FriendRequest{}, nil },
		getRequestBetweenFn: func(context.Context, uint, uint) (*models.FriendRequest, error) { return nil, nil },
		deleteRequestFn:     func(context.Context, uint) error { return nil },
		incomingFn:          func(context.Context, uint) ([]models.FriendRequest, error) { return nil, nil },
		outgoingFn:          func(context.Context, uint) ([]models.FriendRequest, error) { return nil, nil },
		acceptRequestFn:     func(context.Context, *models.FriendRequest) error { return nil },
		areFriendsFn:        func(context.Context, uint, uint) (bool, error) { return false, nil },
		getFriendsFn:        func(context.Context, uint) ([]models.User, error) { return nil, nil },
		removeEdgeFn:        func(context.Context, uint, uint) error { return nil },
	}
}

type postRepoStub struct {
	createFn      func(context.Context, *models.Post) error
	getByIDFn     func(context.Context, uint, uint) (*models.Post, error)
	getByUserIDFn func(context.Context, uint, int, int, uint) ([]*models.Post, error)
	feedFn        func(context.Context, uint, int, int) ([]*models.Post, error)
	updateFn      func(context.Context, *models.Post) error
	deleteFn      func(context.Context, uint) error
	isLikedFn     func(context.Context, uint, uint) (bool, error)
	likeFn        func(context.Context, uint, uint) error
	unlikeFn      func(context.Context, uint, uint) error
	countLikesFn  func(context.Context, uint) (int64, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *postRepoStub) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.getByUserIDFn(ctx, userID, limit, offset, currentUserID)
}
func (s *postRepoStub) Feed(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	return s.feedFn(ctx, userID, limit, offset)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, postID)
}
func (s *postRepoStub) Like(ctx context.Context, userID, postID uint) error {
	return s.likeFn(ctx, userID, postID)
}
func (s *postRepoStub) Unlike(ctx context.Context, userID, postID uint) error {
	return s.unlikeFn(ctx, userID, postID)
}
func (s *postRepoStub) CountLikes(ctx context.Context, postID uint) (int64, error) {
	return s.countLikesFn(ctx, postID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:      func(context.Context, *models.Post) error { return nil },
		getByIDFn:     func(context.Context, uint, uint) (*models.Post, error) { return &models.Post{}, nil },
		getByUserIDFn: func(context.Context, uint, int, int, uint) ([]*models.Post, error) { return nil, nil },
		feedFn:        func(context.Context, uint, int, int) ([]*models.Post, error) { return nil, nil },
		updateFn:      func(context.Context, *models.Post) error { return nil },
		deleteFn:      func(context.Context, uint) error { return nil },
		isLikedFn:     func(context.Context, uint, uint) (bool, error) { return false, nil },
		likeFn:        func(context.Context, uint, uint) error { return nil },
		unlikeFn:      func(context.Context, uint, uint) error { return nil },
		countLikesFn:  func(context.Context, uint) (int64, error) { return 0, nil },
	}
}

type commentRepoStub struct {
	createFn      func(context.Context, *models.Comment) error
	getByIDFn     func(context.Context, uint) (*models.Comment, error)
	getByPostIDFn func(context.Context, uint, int, int) ([]models.Comment, error)
	updateFn      func(context.Context, *models.Comment) error
	deleteFn      func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) GetByPostID(ctx context.Context, postID uint, limit, offset int) ([]models.Comment, error) {
	return s.getByPostIDFn(ctx, postID, limit, offset)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:      func(context.Context, *models.Comment) error { return nil },
		getByIDFn:     func(context.Context, uint) (*models.Comment, error) { return &models.Comment{}, nil },
		getByPostIDFn: func(context.Context, uint, int, int) ([]models.Comment, error) { return nil, nil },
		updateFn:      func(context.Context, *models.Comment) error { return nil },
		deleteFn:      func(context.Context, uint) error { return nil },
	}
}

type messageRepoStub struct {
	createFn               func(context.Context, *models.Message) error
	getByIDFn              func(context.Context, uint) (*models.Message, error)
	historyFn              func(context.Context, uint, uint, int, int) ([]models.Message, error)
	conversationPartnersFn func(context.Context, uint) ([]models.User, error)
	markReadFn             func(context.Context, uint, uint) (int64, error)
	mineFn                 func(context.Context, uint, int, int) ([]models.Message, error)
}

func (s *messageRepoStub) Create(ctx context.Context, message *models.Message) error {
	return s.createFn(ctx, message)
}
func (s *messageRepoStub) GetByID(ctx context.Context, id uint) (*models.Message, error) {
	return s.getByIDFn(ctx, id)
}
func (s *messageRepoStub) History(ctx context.Context, userID, peerID uint, limit, offset int) ([]models.Message, error) {
	return s.historyFn(ctx, userID, peerID, limit, offset)
}
func (s *messageRepoStub) ConversationPartners(ctx context.Context, userID uint) ([]models.User, error) {
	return s.conversationPartnersFn(ctx, userID)
}
func (s *messageRepoStub) MarkRead(ctx context.Context, receiverID, senderID uint) (int64, error) {
	return s.markReadFn(ctx, receiverID, senderID)
}
func (s *messageRepoStub) Mine(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error) {
	return s.mineFn(ctx, userID, limit, offset)
}

func noopMessageRepo() *messageRepoStub {
	return &messageRepoStub{
		createFn:               func(context.Context, *models.Message) error { return nil },
		getByIDFn:              func(context.Context, uint) (*models.Message, error) { return &models.Message{}, nil },
		historyFn:              func(context.Context, uint, uint, int, int) ([]models.Message, error) { return nil, nil },
		conversationPartnersFn: func(context.Context, uint) ([]models.User, error) { return nil, nil },
		markReadFn:             func(context.Context, uint, uint) (int64, error) { return 0, nil },
		mineFn:                 func(context.Context, uint, int, int) ([]models.Message, error) { return nil, nil },
	}
}

type storyRepoStub struct {
	createFn            func(context.Context, *models.Story) error
	getByIDFn           func(context.Context, uint) (*models.Story, error)
	activeSinceFn       func(context.Context, time.Time) ([]models.Story, error)
	activeByUserSinceFn func(context.Context, uint, time.Time) ([]models.Story, error)
	deleteFn            func(context.Context, uint) error
}

func (s *storyRepoStub) Create(ctx context.Context, story *models.Story) error {
	return s.createFn(ctx, story)
}
func (s *storyRepoStub) GetByID(ctx context.Context, id uint) (*models.Story, error) {
	return s.getByIDFn(ctx, id)
}
func (s *storyRepoStub) ActiveSince(ctx context.Context, cutoff time.Time) ([]models.Story, error) {
	return s.activeSinceFn(ctx, cutoff)
}
func (s *storyRepoStub) ActiveByUserSince(ctx context.Context, userID uint, cutoff time.Time) ([]models.Story, error) {
	return s.activeByUserSinceFn(ctx, userID, cutoff)
}
func (s *storyRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopStoryRepo() *storyRepoStub {
	return &storyRepoStub{
		createFn:            func(context.Context, *models.Story) error { return nil },
		getByIDFn:           func(context.Context, uint) (*models.Story, error) { return &models.Story{}, nil },
		activeSinceFn:       func(context.Context, time.Time) ([]models.Story, error) { return nil, nil },
		activeByUserSinceFn: func(context.Context, uint, time.Time) ([]models.Story, error) { return nil, nil },
		deleteFn:            func(context.Context, uint) error { return nil },
	}
}
