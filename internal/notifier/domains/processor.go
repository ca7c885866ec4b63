package domains

import (
	"context"
	"time"

	"github.com/bitleak/lmstfy/client"
	"github.com/google/uuid"

	"printshop/internal/notifier/business"
	"printshop/internal/notifier/framework"
	"printshop/pkg/errorutil"
	"printshop/pkg/lmstfyx"
	"printshop/pkg/logger"
)

// GetProcess 返回核心处理函数（注入到 Processor）
// 可重试错误返回 Release，其余失败返回 Bury
func GetProcess(log logger.Logger, svc *business.NotificationService) lmstfyx.Proc {
	return getProcess(log, svc, HandlerMap)
}

func getProcess(log logger.Logger, svc *business.NotificationService, handlers map[string]HandlerFactory) lmstfyx.Proc {
	return func(ctx context.Context, job *client.Job) (resp *lmstfyx.JobResp) {
		startTime := time.Now()

		// 1. 解析 Job
		base, err := framework.ParseJob(job.Data)
		if err != nil {
			log.Errorf(ctx, "[GetProcess] parse job %s failed: %v", job.ID, err)
			return &lmstfyx.JobResp{Action: lmstfyx.JobRespStatusBury}
		}
		meta := base.GetMeta()

		// 2. 注入 TraceID 到 Context
		traceID := meta.RequestID
		if traceID == "" {
			traceID = uuid.NewString()
		}
		ctx = logger.WithTraceID(ctx, traceID)
		ctx = logger.WithActionType(ctx, meta.ActionType)
		ctx = logger.WithOrderNo(ctx, meta.ID)

		// 3. 从 HandlerMap 获取 Handler
		factory, ok := handlers[meta.ActionType]
		if !ok {
			log.Errorf(ctx, "[GetProcess] handler not found for action_type: %s", meta.ActionType)
			return &lmstfyx.JobResp{Action: lmstfyx.JobRespStatusBury}
		}

		// 4. 调用 Handler（捕获 panic）
		defer func() {
			if r := recover(); r != nil {
				log.Errorf(ctx, "[GetProcess] handler panic: %v", r)
				resp = &lmstfyx.JobResp{Action: lmstfyx.JobRespStatusBury}
			}
			log.Infof(ctx, "[GetProcess] Processing complete: action=%s, duration=%v", resp.Action, time.Since(startTime))
		}()

		handler, err := factory(ctx, base, svc)
		if err != nil {
			log.Errorf(ctx, "[GetProcess] handler creation failed: %v", err)
			return toJobResp(nil, err)
		}

		data, err := handler.Handle(ctx)
		if err != nil {
			log.Warnf(ctx, "[GetProcess] handler failed: %v (retryable=%t)", err, errorutil.IsRetryable(err))
		}
		return toJobResp(data, err)
	}
}

func toJobResp(data []byte, err error) *lmstfyx.JobResp {
	switch {
	case err == nil:
		return &lmstfyx.JobResp{Action: lmstfyx.JobRespStatusSuccess, Data: data}
	case errorutil.IsRetryable(err):
		return &lmstfyx.JobResp{Action: lmstfyx.JobRespStatusRelease, Data: data}
	default:
		return &lmstfyx.JobResp{Action: lmstfyx.JobRespStatusBury, Data: data}
	}
}
