package domains

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/bitleak/lmstfy/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printshop/common/model"
	"printshop/internal/notifier/business"
	"printshop/internal/notifier/framework"
	"printshop/pkg/errorutil"
	"printshop/pkg/lmstfyx"
	"printshop/pkg/logger"
)

type fakeMailer struct {
	sent []*business.Mail
	err  error
}

func (f *fakeMailer) Send(_ context.Context, m *business.Mail) error {
	f.sent = append(f.sent, m)
	return f.err
}

func jobData(t *testing.T, action string, n model.OrderNotification) []byte {
	t.Helper()
	data, err := json.Marshal(model.NotificationJob{Payload: model.NotificationPayload{Data: model.NotificationData{
		RequestID:  "req-1",
		ActionType: action,
		ID:         n.OrderNo,
		Data:       n,
	}}})
	require.NoError(t, err)
	return data
}

func run(proc lmstfyx.Proc, data []byte) *lmstfyx.JobResp {
	return proc(context.Background(), &client.Job{ID: "job-1", Queue: "order_notify", Data: data})
}

func accepted() model.OrderNotification {
	return model.OrderNotification{OrderNo: "PS-9", Email: "jo@example.com", Total: "$22.50"}
}

func TestGetProcessDeliversNotification(t *testing.T) {
	mailer := &fakeMailer{}
	proc := GetProcess(logger.NewNop(), business.NewNotificationService(mailer, nil, "Print Shop", logger.NewNop()))

	resp := run(proc, jobData(t, model.ActionOrderNotify, accepted()))

	assert.Equal(t, lmstfyx.JobRespStatusSuccess, resp.Action)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "jo@example.com", mailer.sent[0].To)

	var out struct {
		Processed bool `json:"processed"`
		Result    struct {
			OrderNo string `json:"order_no"`
			Status  string `json:"status"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &out))
	assert.True(t, out.Processed)
	assert.Equal(t, "PS-9", out.Result.OrderNo)
	assert.Equal(t, model.NotificationStatusSent, out.Result.Status)
}

func TestGetProcessReleasesRetryableFailures(t *testing.T) {
	mailer := &fakeMailer{err: errorutil.Retriable("smtp timeout")}
	proc := GetProcess(logger.NewNop(), business.NewNotificationService(mailer, nil, "Print Shop", logger.NewNop()))

	resp := run(proc, jobData(t, model.ActionOrderNotify, accepted()))
	assert.Equal(t, lmstfyx.JobRespStatusRelease, resp.Action)
}

func TestGetProcessBuriesPermanentFailures(t *testing.T) {
	mailer := &fakeMailer{}
	proc := GetProcess(logger.NewNop(), business.NewNotificationService(mailer, nil, "Print Shop", logger.NewNop()))

	bad := accepted()
	bad.Email = "not-an-address"

	cases := map[string][]byte{
		"malformed json": []byte("{"),
		"unknown action": jobData(t, "order_refund", accepted()),
		"bad recipient":  jobData(t, model.ActionOrderNotify, bad),
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, lmstfyx.JobRespStatusBury, run(proc, data).Action)
		})
	}
	assert.Empty(t, mailer.sent)
}

type panicHandler struct{}

func (panicHandler) Handle(context.Context) ([]byte, error) { panic("boom") }

func TestGetProcessRecoversPanics(t *testing.T) {
	handlers := map[string]HandlerFactory{
		model.ActionOrderNotify: func(context.Context, *framework.BaseHandler, *business.NotificationService) (framework.BusinessHandler, error) {
			return panicHandler{}, nil
		},
	}
	proc := getProcess(logger.NewNop(), nil, handlers)

	assert.Equal(t, lmstfyx.JobRespStatusBury, run(proc, jobData(t, model.ActionOrderNotify, accepted())).Action)
}
