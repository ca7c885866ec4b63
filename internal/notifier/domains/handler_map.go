package domains

import (
	"context"

	"printshop/common/model"
	"printshop/internal/notifier/business"
	"printshop/internal/notifier/domains/handlers/notify"
	"printshop/internal/notifier/framework"
)

// HandlerFactory Handler 构造函数类型
type HandlerFactory func(
	ctx context.Context,
	base *framework.BaseHandler,
	svc *business.NotificationService,
) (framework.BusinessHandler, error)

// HandlerMap 路由表（ActionType → Handler 映射）
var HandlerMap = map[string]HandlerFactory{
	model.ActionOrderNotify: notify.NewNotifyHandler,
}
