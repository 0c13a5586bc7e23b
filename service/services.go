// service/services.go
package service

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/dev-mohitbeniwal/offerwall/approval/cache"
	"github.com/dev-mohitbeniwal/offerwall/util"
)

type Services struct {
	Session  *SessionService
	Approval IApprovalService
	Cache    *cache.StatusCache
}

func InitializeServices(
	fetcher PlacementFetcher,
	keyfunc jwt.Keyfunc,
	validationUtil *util.ValidationUtil,
	notificationSvc *util.NotificationService,
	eventBus *util.EventBus,
	cacheOpts ...cache.Option,
) *Services {
	session := NewSessionService(fetcher, validationUtil, keyfunc)
	statusCache := cache.NewStatusCache(session, append([]cache.Option{cache.WithPublisher(eventBus)}, cacheOpts...)...)

	return &Services{
		Session:  session,
		Approval: NewApprovalService(session, statusCache, notificationSvc, eventBus),
		Cache:    statusCache,
	}
}
