package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix         = "user:%d"
	UserProfileKeyPrefix  = "user:%d:full"
	PostKeyPrefix         = "post:%d"
	PostsListKey          = "posts:list"
	CampaignKeyPrefix     = "campaign:%d"
	CampaignListKey       = "campaigns:list"
	RequestKeyPrefix      = "request:%d"
	RequestListKey        = "requests:list"
	AnnouncementsListKey  = "announcements:list"
	OrganizationKeyPrefix = "organization:%d"
)

const (
	UserTTL          = 5 * time.Minute
	UserProfileTTL   = 2 * time.Minute
	PostTTL          = 30 * time.Minute
	CampaignTTL      = 10 * time.Minute
	ListTTL          = 1 * time.Minute
	AnnouncementsTTL = 5 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func UserProfileKey(userID uint) string {
	return fmt.Sprintf(UserProfileKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func CampaignKey(campaignID uint) string {
	return fmt.Sprintf(CampaignKeyPrefix, campaignID)
}

func RequestKey(requestID uint) string {
	return fmt.Sprintf(RequestKeyPrefix, requestID)
}

func OrganizationKey(orgID uint) string {
	return fmt.Sprintf(OrganizationKeyPrefix, orgID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
	Invalidate(ctx, UserProfileKey(userID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

func InvalidatePostsList(ctx context.Context) {
	Invalidate(ctx, PostsListKey)
}

func InvalidateCampaign(ctx context.Context, campaignID uint) {
	Invalidate(ctx, CampaignKey(campaignID))
	Invalidate(ctx, CampaignListKey)
}

func InvalidateRequest(ctx context.Context, requestID uint) {
	Invalidate(ctx, RequestKey(requestID))
	Invalidate(ctx, RequestListKey)
}
