package modules

import (
	"errors"
	"fmt"
	"sync"
	"time"

	tg "github.com/amarnathcjd/gogram/telegram"
)

const (
	inviteValidity    = time.Minute
	inviteMemberLimit = 1
)

var ErrInviteUnavailable = errors.New("invite link unavailable")

type inviteAPI interface {
	CreateInvite(expire time.Time, memberLimit int) (string, error)
	RevokeInvite(link string) error
}

// InviteManager mints single-use, time-boxed invite links and keeps the
// index of links that have not yet been revoked. Every issued link is
// revoked after the validity window, consumed or not; a scheduled
// revocation cannot be cancelled.
type InviteManager struct {
	mu     sync.Mutex
	active map[int64]string

	api      inviteAPI
	now      func() time.Time
	schedule func(d time.Duration, fn func())
}

func NewInviteManager(api inviteAPI) *InviteManager {
	return &InviteManager{
		active: make(map[int64]string),
		api:    api,
		now:    time.Now,
		schedule: func(d time.Duration, fn func()) {
			time.AfterFunc(d, fn)
		},
	}
}

// Issue requests a fresh link for the user and schedules its revocation.
// Failures are terminal for this attempt; the caller points the user at a
// human admin and never retries.
func (im *InviteManager) Issue(userID int64) (string, error) {
	link, err := im.api.CreateInvite(im.now().Add(inviteValidity), inviteMemberLimit)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInviteUnavailable, err)
	}

	im.mu.Lock()
	im.active[userID] = link
	im.mu.Unlock()

	im.schedule(inviteValidity, func() { im.revoke(userID, link) })
	return link, nil
}

func (im *InviteManager) revoke(userID int64, link string) {
	if err := im.api.RevokeInvite(link); err != nil {
		logWarn("could not revoke invite link " + link + ": " + err.Error())
	} else {
		logInfo("invite link revoked: " + link)
	}

	// the link leaves the index either way; a failed revocation is not
	// retried
	im.mu.Lock()
	if im.active[userID] == link {
		delete(im.active, userID)
	}
	im.mu.Unlock()
}

func (im *InviteManager) ActiveLink(userID int64) (string, bool) {
	im.mu.Lock()
	defer im.mu.Unlock()
	link, ok := im.active[userID]
	return link, ok
}

func (im *InviteManager) ActiveInvites() int {
	im.mu.Lock()
	defer im.mu.Unlock()
	return len(im.active)
}

// channelInvites implements inviteAPI over the raw chat invite calls.
type channelInvites struct {
	client    *tg.Client
	channelID int64
}

func (ci *channelInvites) CreateInvite(expire time.Time, memberLimit int) (string, error) {
	peer, err := ci.client.ResolvePeer(ci.channelID)
	if err != nil {
		return "", err
	}
	res, err := ci.client.MessagesExportChatInvite(&tg.MessagesExportChatInviteParams{
		Peer:       peer,
		ExpireDate: int32(expire.Unix()),
		UsageLimit: int32(memberLimit),
	})
	if err != nil {
		return "", err
	}
	exported, ok := res.(*tg.ChatInviteExported)
	if !ok {
		return "", fmt.Errorf("unexpected invite type %T", res)
	}
	return exported.Link, nil
}

func (ci *channelInvites) RevokeInvite(link string) error {
	peer, err := ci.client.ResolvePeer(ci.channelID)
	if err != nil {
		return err
	}
	_, err = ci.client.MessagesEditExportedChatInvite(&tg.MessagesEditExportedChatInviteParams{
		Peer:    peer,
		Link:    link,
		Revoked: true,
	})
	return err
}
